// Package blast runs the external tools that produce a BLAST table for a set
// of target intervals (bedtools getfasta and blastn) and reads that table back
// into Records.
package blast

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes an external command and waits for it to finish.
// If stdout is non-nil the command's standard output is written to it.
type Runner interface {
	Run(ctx context.Context, stdout io.Writer, name string, args ...string) error
}

// ExecRunner is a Runner that calls binaries on the local fs.
type ExecRunner struct{}

// Run calls the external binary and returns an *ExecError if it fails.
func (ExecRunner) Run(ctx context.Context, stdout io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if stdout != nil {
		cmd.Stdout = stdout
	}

	if err := cmd.Run(); err != nil {
		return &ExecError{
			Tool:   name,
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}

// ExecError is returned when an external tool can't be started or exits non-zero.
type ExecError struct {
	// Tool is the binary that was called
	Tool string

	// Args passed to the binary
	Args []string

	// Stderr of the failed call
	Stderr string

	// Err from os/exec
	Err error
}

func (e *ExecError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("failed to execute %s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("failed to execute %s: %v: %s", e.Tool, e.Err, e.Stderr)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// GetFasta extracts the sequence of every interval in a BED file from the genome.
// Each FASTA entry is named by its own locus, ie ">chr1:99-200".
type GetFasta struct {
	// path to the bedtools binary
	Bedtools string

	// path to the reference genome FASTA
	Genome string

	// path to the BED file with target intervals
	Bed string

	// the FASTA file to write. bedtools writes to stdout and this collects it
	Out string
}

// Args returns the bedtools arguments.
func (g GetFasta) Args() []string {
	return []string{"getfasta", "-fi", g.Genome, "-bed", g.Bed}
}

// Run calls bedtools getfasta and writes its output to g.Out.
func (g GetFasta) Run(ctx context.Context, r Runner) (err error) {
	out, err := os.Create(g.Out)
	if err != nil {
		return fmt.Errorf("failed to create FASTA file at %s: %w", g.Out, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close FASTA file at %s: %w", g.Out, cerr)
		}
	}()

	return r.Run(ctx, out, binary(g.Bedtools, "bedtools"), g.Args()...)
}

// Blastn aligns the query FASTA against a BLAST database, keeping only
// 100% identity matches, and writes a tabular (outfmt 6) result file.
type Blastn struct {
	// path to the blastn binary
	Blastn string

	// the query FASTA
	Query string

	// the BLAST database. The genome's path, it was indexed with makeblastdb
	DB string

	// the tabular result file
	Out string
}

// Args returns the blastn arguments.
// https://www.ncbi.nlm.nih.gov/books/NBK279684/
func (b Blastn) Args() []string {
	return []string{
		"-query", b.Query,
		"-db", b.DB,
		"-out", b.Out,
		"-perc_identity", "100",
		"-outfmt", "6",
	}
}

// Run calls blastn and waits on it to finish.
func (b Blastn) Run(ctx context.Context, r Runner) error {
	return r.Run(ctx, nil, binary(b.Blastn, "blastn"), b.Args()...)
}

func binary(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
