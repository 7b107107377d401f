// Package offtarget finds the BLAST matches of amplicons that land somewhere
// other than the amplicon's own interval and writes them to a report.
package offtarget

import (
	"fmt"

	"github.com/jjtimmons/offtarget/internal/blast"
)

// Options for classifying BLAST records.
type Options struct {
	// MinLength is the span an off-target match has to exceed to be reported
	MinLength int

	// SameChromosome also flags matches on the amplicon's chromosome that
	// fall outside its interval. Off by default
	SameChromosome bool
}

// Hit is an off-target match of an amplicon: a row of the report.
type Hit struct {
	// Amplicon is the query name, its own locus
	Amplicon string

	// Homolog is the locus of the 100% identity match, chrom:start-end
	Homolog string
}

// Stats are the counts from a classification.
type Stats struct {
	// Records read from the BLAST results
	Records int `yaml:"records"`

	// OffTarget records before the length filter
	OffTarget int `yaml:"off_target"`

	// Reported records, those that passed the length filter
	Reported int `yaml:"reported"`

	// Amplicons with at least one reported off-target
	Amplicons int `yaml:"amplicons"`
}

// Classifier decides which BLAST records are off-target.
// It caches each query's parsed locus.
type Classifier struct {
	opts Options
	loci map[string]Locus
}

// NewClassifier returns a Classifier for opts.
func NewClassifier(opts Options) *Classifier {
	return &Classifier{
		opts: opts,
		loci: make(map[string]Locus),
	}
}

// source returns the locus the record's query was extracted from.
func (c *Classifier) source(query string) (Locus, error) {
	if l, ok := c.loci[query]; ok {
		return l, nil
	}

	l, err := ParseLocus(query)
	if err != nil {
		return Locus{}, err
	}
	c.loci[query] = l
	return l, nil
}

// IsOffTarget returns whether the record is a match outside the query's own locus.
func (c *Classifier) IsOffTarget(r blast.Record) (bool, error) {
	src, err := c.source(r.Query)
	if err != nil {
		return false, err
	}
	return offTarget(src, r, c.opts.SameChromosome), nil
}

// Classify keeps the off-target records that pass the length filter and
// returns them as report rows in their input order.
func (c *Classifier) Classify(records []blast.Record) ([]Hit, Stats, error) {
	stats := Stats{Records: len(records)}
	hits := []Hit{}
	amplicons := make(map[string]bool)

	for _, r := range records {
		off, err := c.IsOffTarget(r)
		if err != nil {
			return nil, stats, fmt.Errorf("failed to classify match of %s on %s: %w", r.Query, r.Subject, err)
		}
		if !off {
			continue
		}
		stats.OffTarget++

		if !PassesLength(r, c.opts.MinLength) {
			continue
		}

		hits = append(hits, ToReport(r))
		amplicons[r.Query] = true
	}

	stats.Reported = len(hits)
	stats.Amplicons = len(amplicons)
	return hits, stats, nil
}

// IsOffTarget returns whether the record is off-target: on another chromosome than
// the query's own locus and not within the query's interval.
//
// A match on the query's chromosome but outside its interval is not off-target.
func IsOffTarget(r blast.Record) (bool, error) {
	src, err := ParseLocus(r.Query)
	if err != nil {
		return false, err
	}
	return offTarget(src, r, false), nil
}

func offTarget(src Locus, r blast.Record, sameChromosome bool) bool {
	otherChrom := r.Subject != src.Chrom
	outside := !src.Contains(r.SubjectStart, r.SubjectEnd)

	if sameChromosome {
		return otherChrom || outside
	}
	return otherChrom && outside
}

// PassesLength returns whether the record's span on the subject is
// greater than minLength.
func PassesLength(r blast.Record, minLength int) bool {
	return span(r) > minLength
}

// span is abs(start - end + 1). for a minus strand match (start > end) it's
// one less than the number of bases covered
func span(r blast.Record) int {
	s := r.SubjectStart - r.SubjectEnd + 1
	if s < 0 {
		return -s
	}
	return s
}

// ToReport projects the record into a report row.
func ToReport(r blast.Record) Hit {
	return Hit{
		Amplicon: r.Query,
		Homolog:  Locus{Chrom: r.Subject, Start: r.SubjectStart, End: r.SubjectEnd}.String(),
	}
}
