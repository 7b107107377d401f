package offtarget

import (
	"errors"
	"testing"

	"github.com/jjtimmons/offtarget/internal/blast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rec makes a BLAST record with just the fields used to classify it
func rec(query, subject string, start, end int) blast.Record {
	return blast.Record{
		Query:        query,
		Subject:      subject,
		Identity:     100,
		SubjectStart: start,
		SubjectEnd:   end,
	}
}

func TestIsOffTarget(t *testing.T) {
	tests := []struct {
		name   string
		record blast.Record
		want   bool
	}{
		{
			"self match on the amplicon's own interval",
			rec("chr1:100-200", "chr1", 100, 200),
			false,
		},
		{
			"self match within the amplicon's interval",
			rec("chr1:100-200", "chr1", 120, 180),
			false,
		},
		{
			"other chromosome, outside the interval",
			rec("chr1:100-200", "chr2", 95, 150),
			true,
		},
		{
			"other chromosome, far away",
			rec("chr1:100-200", "chrX", 5000, 5100),
			true,
		},
		{
			"other chromosome, coordinates within the interval",
			rec("chr1:100-200", "chr7", 120, 180),
			false,
		},
		{
			// a paralog on the same chromosome isn't flagged
			"same chromosome, outside the interval",
			rec("chr1:100-200", "chr1", 90000, 90100),
			false,
		},
		{
			"same chromosome, overlapping the interval's end",
			rec("chr1:100-200", "chr1", 150, 250),
			false,
		},
		{
			"other chromosome, minus strand",
			rec("chr1:100-200", "chr3", 400, 301),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsOffTarget(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// the memoizing classifier agrees with the literal rule
			got, err = NewClassifier(Options{}).IsOffTarget(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsOffTarget_malformedQuery(t *testing.T) {
	_, err := IsOffTarget(rec("amplicon_1", "chr2", 95, 150))

	var lerr *MalformedLocusError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "amplicon_1", lerr.Name)
}

func TestClassifier_IsOffTarget_sameChromosome(t *testing.T) {
	c := NewClassifier(Options{SameChromosome: true})

	tests := []struct {
		name   string
		record blast.Record
		want   bool
	}{
		{"self match", rec("chr1:100-200", "chr1", 100, 200), false},
		{"same chromosome, outside", rec("chr1:100-200", "chr1", 90000, 90100), true},
		{"same chromosome, overlapping", rec("chr1:100-200", "chr1", 150, 250), true},
		{"other chromosome", rec("chr1:100-200", "chr2", 95, 150), true},
		{"other chromosome, coordinates within", rec("chr1:100-200", "chr7", 120, 180), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.IsOffTarget(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPassesLength(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		end       int
		minLength int
		want      bool
	}{
		// abs(95 - 150 + 1) = 54
		{"longer than min", 95, 150, 10, true},
		{"equal to min is excluded", 95, 150, 54, false},
		{"one over min", 95, 150, 53, true},
		{"default min", 95, 150, 0, true},
		// abs(150 - 95 + 1) = 56
		{"minus strand", 150, 95, 55, true},
		{"minus strand equal", 150, 95, 56, false},
		// abs(10 - 10 + 1) = 1
		{"single base", 10, 10, 0, true},
		{"single base, min 1", 10, 10, 1, false},
		// abs(11 - 10 + 1) = 2
		{"two base minus strand", 11, 10, 1, true},
		// abs(10 - 11 + 1) = 0
		{"two base plus strand", 10, 11, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rec("chr1:100-200", "chr2", tt.start, tt.end)
			assert.Equal(t, tt.want, PassesLength(r, tt.minLength))
		})
	}
}

func TestToReport(t *testing.T) {
	got := ToReport(rec("chr1:100-200", "chr2", 95, 150))
	assert.Equal(t, Hit{Amplicon: "chr1:100-200", Homolog: "chr2:95-150"}, got)

	// minus strand coordinates are reported as blast wrote them
	got = ToReport(rec("chr1:100-200", "chr3", 400, 301))
	assert.Equal(t, "chr3:400-301", got.Homolog)
}

func TestClassifier_Classify(t *testing.T) {
	records := []blast.Record{
		rec("chr1:100-200", "chr1", 100, 200),       // self
		rec("chr1:100-200", "chr2", 95, 150),        // off-target, span 54
		rec("chr5:1000-1100", "chr5", 1000, 1100),   // self
		rec("chr5:1000-1100", "chrX", 9040, 9001),   // off-target, span 40
		rec("chr5:1000-1100", "chr5", 70000, 70100), // same chromosome, not flagged
		rec("chr1:100-200", "chr9", 10, 15),         // off-target, span 4
		rec("chr1:100-200", "chr4", 500, 600),       // off-target, span 99
	}

	hits, stats, err := NewClassifier(Options{MinLength: 10}).Classify(records)
	require.NoError(t, err)

	// input order is kept
	assert.Equal(t, []Hit{
		{"chr1:100-200", "chr2:95-150"},
		{"chr5:1000-1100", "chrX:9040-9001"},
		{"chr1:100-200", "chr4:500-600"},
	}, hits)
	assert.Equal(t, Stats{Records: 7, OffTarget: 4, Reported: 3, Amplicons: 2}, stats)
}

func TestClassifier_Classify_scenario(t *testing.T) {
	hits, _, err := NewClassifier(Options{MinLength: 10}).Classify([]blast.Record{
		rec("chr1:100-200", "chr2", 95, 150),
	})
	require.NoError(t, err)
	assert.Equal(t, []Hit{{Amplicon: "chr1:100-200", Homolog: "chr2:95-150"}}, hits)
}

func TestClassifier_Classify_empty(t *testing.T) {
	hits, stats, err := NewClassifier(Options{}).Classify(nil)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.NotNil(t, hits)
	assert.Equal(t, Stats{}, stats)
}

func TestClassifier_Classify_malformed(t *testing.T) {
	records := []blast.Record{
		rec("chr1:100-200", "chr2", 95, 150),
		rec("amplicon_2", "chr2", 95, 150),
	}

	hits, _, err := NewClassifier(Options{}).Classify(records)
	require.Error(t, err)
	assert.Nil(t, hits)

	var lerr *MalformedLocusError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "amplicon_2", lerr.Name)
}

func TestClassifier_Classify_idempotent(t *testing.T) {
	records := []blast.Record{
		rec("chr1:100-200", "chr2", 95, 150),
		rec("chr1:100-200", "chr1", 100, 200),
		rec("chr5:1000-1100", "chrX", 9040, 9001),
	}

	c := NewClassifier(Options{MinLength: 10})
	first, firstStats, err := c.Classify(records)
	require.NoError(t, err)
	second, secondStats, err := c.Classify(records)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstStats, secondStats)
}
