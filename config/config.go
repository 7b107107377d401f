// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Defaults for the intermediate and output files.
const (
	DefaultTargetFasta = "target_sequences.fasta"
	DefaultBlastResult = "blast_result.txt"
	DefaultOutput      = "results_with_coordinates.tsv"
	DefaultBedtools    = "bedtools"
	DefaultBlastn      = "blastn"
)

// EnvPrefix is prepended to settings read from the environment, ie OFFTARGET_MIN_LENGTH.
const EnvPrefix = "offtarget"

// Config is the root-level settings struct and is a mix
// of settings available in a settings file, the environment,
// and those available from the command line
type Config struct {
	// path to the BED file with the target intervals (amplicons)
	Bed string `mapstructure:"bed"`

	// path to the reference genome FASTA. Also the name of its BLAST db
	Genome string `mapstructure:"genome"`

	// an off-target match has to be longer than this to be reported
	MinLength int `mapstructure:"min-length"`

	// the FASTA file written with the targets' sequences
	TargetFasta string `mapstructure:"target-fasta"`

	// the tabular BLAST result file
	BlastResult string `mapstructure:"blast-result"`

	// the TSV report of off-target matches
	Output string `mapstructure:"output"`

	// path to the bedtools binary
	Bedtools string `mapstructure:"bedtools"`

	// path to the blastn binary
	Blastn string `mapstructure:"blastn"`

	// also report matches on the target's own chromosome that are outside its interval
	SameChromosome bool `mapstructure:"same-chromosome"`

	// optional path for a YAML summary of the run
	Summary string `mapstructure:"summary"`

	// log debug messages
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers every setting's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("bed", "")
	v.SetDefault("genome", "")
	v.SetDefault("min-length", 0)
	v.SetDefault("target-fasta", DefaultTargetFasta)
	v.SetDefault("blast-result", DefaultBlastResult)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("bedtools", DefaultBedtools)
	v.SetDefault("blastn", DefaultBlastn)
	v.SetDefault("same-chromosome", false)
	v.SetDefault("summary", "")
	v.SetDefault("verbose", false)
}

// New returns a Config populated from the global Viper settings.
func New() (Config, error) {
	return FromViper(viper.GetViper())
}

// FromViper returns a new Config struct populated by the settings
// of v (a settings file, the environment and/or command line arguments).
func FromViper(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode settings: %w", err)
	}
	return c, nil
}

// ValidateClassify checks the settings needed to classify an existing BLAST result file.
func (c Config) ValidateClassify() error {
	var errs []error
	if c.MinLength < 0 {
		errs = append(errs, fmt.Errorf("min-length must be >= 0, got %d", c.MinLength))
	}
	if c.BlastResult == "" {
		errs = append(errs, errors.New("no blast-result path set"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("no output path set"))
	}
	return errors.Join(errs...)
}

// Validate checks the settings needed to run the whole pipeline.
func (c Config) Validate() error {
	var errs []error
	if c.Bed == "" {
		errs = append(errs, errors.New("no bed file set"))
	}
	if c.Genome == "" {
		errs = append(errs, errors.New("no genome set"))
	}
	if c.TargetFasta == "" {
		errs = append(errs, errors.New("no target-fasta path set"))
	}
	if err := c.ValidateClassify(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
