package offtarget

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// summary is the YAML document describing a run.
type summary struct {
	Stages  []stageSummary `yaml:"stages"`
	Targets int            `yaml:"targets,omitempty"`
	Clean   []string       `yaml:"clean_targets,omitempty"`
	Stats   Stats          `yaml:"stats"`
}

type stageSummary struct {
	Name    string `yaml:"name"`
	Status  string `yaml:"status"`
	Error   string `yaml:"error,omitempty"`
	Elapsed string `yaml:"elapsed"`
}

// WriteSummary writes the outcome's stages and counts as YAML.
func WriteSummary(w io.Writer, o *Outcome) error {
	s := summary{Targets: o.Targets, Clean: o.Clean, Stats: o.Stats}
	for _, st := range o.Stages {
		ss := stageSummary{Name: st.Name, Status: "ok", Elapsed: st.Elapsed.String()}
		if st.Err != nil {
			ss.Status = "failed"
			ss.Error = st.Err.Error()
		}
		s.Stages = append(s.Stages, ss)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// WriteSummaryFile writes the outcome's YAML summary to filename.
func WriteSummaryFile(filename string, o *Outcome) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create summary at %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	return WriteSummary(f, o)
}
