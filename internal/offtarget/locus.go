package offtarget

import (
	"fmt"
	"regexp"
	"strconv"
)

// locusName is how bedtools names the sequence of an interval: chrom:start-end
var locusName = regexp.MustCompile(`^([^:]+):(\d+)-(\d+)$`)

// Locus is a position on the genome. Start and End are 1-based and
// end-inclusive, as blastn reports them.
type Locus struct {
	Chrom string
	Start int
	End   int
}

// String formats the locus as chrom:start-end.
func (l Locus) String() string {
	return fmt.Sprintf("%s:%d-%d", l.Chrom, l.Start, l.End)
}

// Contains returns whether [start, end] is within the locus.
func (l Locus) Contains(start, end int) bool {
	return start >= l.Start && end <= l.End
}

// MalformedLocusError is returned for a query name that isn't a chrom:start-end locus.
// It means the BLAST input was not built from a BED file and the results can't be trusted.
type MalformedLocusError struct {
	Name string
	Err  error
}

func (e *MalformedLocusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed locus %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("malformed locus %q: expected chrom:start-end", e.Name)
}

func (e *MalformedLocusError) Unwrap() error {
	return e.Err
}

// ParseLocus parses a query name like "chr1:100-200" into a Locus.
func ParseLocus(name string) (Locus, error) {
	m := locusName.FindStringSubmatch(name)
	if m == nil {
		return Locus{}, &MalformedLocusError{Name: name}
	}

	start, err := strconv.Atoi(m[2])
	if err != nil {
		return Locus{}, &MalformedLocusError{Name: name, Err: err}
	}
	end, err := strconv.Atoi(m[3])
	if err != nil {
		return Locus{}, &MalformedLocusError{Name: name, Err: err}
	}

	return Locus{Chrom: m[1], Start: start, End: end}, nil
}
