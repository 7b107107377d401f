package blast

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// columns is the number of fields in a row of blastn's default tabular output (-outfmt 6):
//
//	qseqid sseqid pident length mismatch gapopen qstart qend sstart send evalue bitscore
const columns = 12

// Record is a single row of a BLAST tabular result.
type Record struct {
	// Query is the query's FASTA id. For targets it's their own locus, ie "chr1:99-200"
	Query string

	// Subject is the id of the matched entry in the db (the chromosome)
	Subject string

	// Identity is the percentage of identical matches
	Identity float64

	// Length of the alignment
	Length int

	// Mismatches in the alignment
	Mismatches int

	// GapOpens in the alignment
	GapOpens int

	// QueryStart of the alignment on the query (1-based)
	QueryStart int

	// QueryEnd of the alignment on the query (1-based)
	QueryEnd int

	// SubjectStart of the alignment on the subject (1-based). greater than SubjectEnd on the minus strand
	SubjectStart int

	// SubjectEnd of the alignment on the subject (1-based)
	SubjectEnd int

	// EValue of the alignment
	EValue float64

	// BitScore of the alignment
	BitScore float64
}

// ParseError is returned for a row that isn't a valid outfmt 6 line.
type ParseError struct {
	// Line number, 1-based
	Line int

	// Text of the line
	Text string

	// Err is the reason
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse BLAST row %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Read reads a complete BLAST result file into Records.
func Read(filename string) ([]Record, error) {
	file, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read BLAST results: %w", err)
	}
	return parse(string(file))
}

// Parse reads BLAST tabular output from r into Records.
func Parse(r io.Reader) ([]Record, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read BLAST results: %w", err)
	}
	return parse(string(contents))
}

// parse splits BLAST output into rows. Empty lines and comment lines are skipped,
// rows keep the order they had in the file.
func parse(contents string) (records []Record, err error) {
	for i, line := range strings.Split(contents, "\n") {
		line = strings.TrimRight(line, "\r")

		// comment lines start with a # (-outfmt 7)
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		r, err := parseRow(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: line, Err: err}
		}
		records = append(records, r)
	}

	return records, nil
}

func parseRow(line string) (r Record, err error) {
	cols := strings.Split(line, "\t")
	if len(cols) != columns {
		return r, fmt.Errorf("expected %d tab separated columns, found %d", columns, len(cols))
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	r.Query = cols[0]
	r.Subject = cols[1]
	if r.Query == "" || r.Subject == "" {
		return r, fmt.Errorf("empty query or subject id")
	}

	floats := []struct {
		name string
		dst  *float64
		col  string
	}{
		{"pident", &r.Identity, cols[2]},
		{"evalue", &r.EValue, cols[10]},
		{"bitscore", &r.BitScore, cols[11]},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(f.col, 64); err != nil {
			return r, fmt.Errorf("bad %s: %w", f.name, err)
		}
	}

	ints := []struct {
		name string
		dst  *int
		col  string
	}{
		{"length", &r.Length, cols[3]},
		{"mismatch", &r.Mismatches, cols[4]},
		{"gapopen", &r.GapOpens, cols[5]},
		{"qstart", &r.QueryStart, cols[6]},
		{"qend", &r.QueryEnd, cols[7]},
		{"sstart", &r.SubjectStart, cols[8]},
		{"send", &r.SubjectEnd, cols[9]},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(f.col); err != nil {
			return r, fmt.Errorf("bad %s: %w", f.name, err)
		}
	}

	return r, nil
}
