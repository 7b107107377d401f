package offtarget

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// report column names
const (
	ampliconColumn = "amplicon"
	homologColumn  = "100% homolog"
)

// WriteReport writes hits as a tab separated table with a header.
func WriteReport(w io.Writer, hits []Hit) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	if err := tw.Write([]string{ampliconColumn, homologColumn}); err != nil {
		return err
	}
	for _, h := range hits {
		if err := tw.Write([]string{h.Amplicon, h.Homolog}); err != nil {
			return err
		}
	}

	tw.Flush()
	return tw.Error()
}

// WriteReportFile writes the hits' report to filename, replacing it if it exists.
func WriteReportFile(filename string, hits []Hit) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report at %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close report at %s: %w", filename, cerr)
		}
	}()

	if err := WriteReport(f, hits); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", filename, err)
	}
	return nil
}
