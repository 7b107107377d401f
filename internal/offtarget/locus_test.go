package offtarget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocus(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Locus
		wantErr bool
	}{
		{"amplicon", "chr1:100-200", Locus{"chr1", 100, 200}, false},
		{"unplaced contig", "chrUn_gl000220:1-161802", Locus{"chrUn_gl000220", 1, 161802}, false},
		{"zero start", "chrM:0-16571", Locus{"chrM", 0, 16571}, false},
		{"no coordinates", "bad", Locus{}, true},
		{"missing end", "chr1:100-", Locus{}, true},
		{"missing chrom", ":100-200", Locus{}, true},
		{"colon in chrom", "HLA:A:100-200", Locus{}, true},
		{"strand suffix", "chr1:100-200(+)", Locus{}, true},
		{"not base 10", "chr1:0x10-200", Locus{}, true},
		{"negative", "chr1:-5-200", Locus{}, true},
		{"overflow", "chr1:1-99999999999999999999999", Locus{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocus(tt.in)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			var lerr *MalformedLocusError
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, tt.in, lerr.Name)
		})
	}
}

func TestLocus_String(t *testing.T) {
	l := Locus{Chrom: "chr2", Start: 95, End: 150}
	assert.Equal(t, "chr2:95-150", l.String())

	parsed, err := ParseLocus(l.String())
	require.NoError(t, err)
	assert.Equal(t, l, parsed)
}

func TestLocus_Contains(t *testing.T) {
	l := Locus{Chrom: "chr1", Start: 100, End: 200}

	assert.True(t, l.Contains(100, 200))
	assert.True(t, l.Contains(120, 180))
	assert.False(t, l.Contains(99, 150))
	assert.False(t, l.Contains(150, 201))
	assert.False(t, l.Contains(300, 400))
}
