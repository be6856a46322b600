package segment_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/triangulation/segment"
)

// TestValidate covers every field invariant and a valid baseline.
func TestValidate(t *testing.T) {
	ok := segment.Segment{MatchName: "A", Chromosome: "1", Start: 0, End: 10, Centimorgans: 1, MatchingSNPs: 5}
	require.NoError(t, ok.Validate())

	cases := map[string]segment.Segment{
		"empty chromosome": {MatchName: "A", Start: 0, End: 10},
		"end equals start": {MatchName: "A", Chromosome: "1", Start: 10, End: 10},
		"end before start": {MatchName: "A", Chromosome: "1", Start: 10, End: 5},
		"negative cM":      {MatchName: "A", Chromosome: "1", Start: 0, End: 10, Centimorgans: -1},
		"NaN cM":           {MatchName: "A", Chromosome: "1", Start: 0, End: 10, Centimorgans: math.NaN()},
		"negative SNPs":    {MatchName: "A", Chromosome: "1", Start: 0, End: 10, MatchingSNPs: -1},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, s.Validate(), segment.ErrInvalidSegment)
		})
	}
}

// TestFilterByCentimorgans checks inclusive bounds, order preservation and range errors.
func TestFilterByCentimorgans(t *testing.T) {
	in := []segment.Segment{
		{MatchName: "a", Centimorgans: 5},
		{MatchName: "b", Centimorgans: 10},
		{MatchName: "c", Centimorgans: 20},
		{MatchName: "d", Centimorgans: 30},
	}

	got, err := segment.FilterByCentimorgans(in, 10, 20)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].MatchName)
	assert.Equal(t, "c", got[1].MatchName)

	got, err = segment.FilterByCentimorgans(in, 0, math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, in, got)

	_, err = segment.FilterByCentimorgans(in, 20, 10)
	require.ErrorIs(t, err, segment.ErrInvalidRange)
	_, err = segment.FilterByCentimorgans(in, math.NaN(), 10)
	require.ErrorIs(t, err, segment.ErrInvalidRange)

	got, err = segment.FilterByCentimorgans(nil, 0, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestInCentimorganRange checks both bounds are inclusive.
func TestInCentimorganRange(t *testing.T) {
	s := segment.Segment{Centimorgans: 10}
	assert.True(t, segment.InCentimorganRange(s, 10, 10))
	assert.True(t, segment.InCentimorganRange(s, 0, math.Inf(1)))
	assert.False(t, segment.InCentimorganRange(s, 10.5, 20))
	assert.False(t, segment.InCentimorganRange(s, 0, 9.99))
	assert.False(t, segment.InCentimorganRange(s, math.NaN(), 20))
}

// TestCompareChromosomes sorts a shuffled key set into display order.
func TestCompareChromosomes(t *testing.T) {
	keys := []string{"Y", "10", "X", "2", "MT", "1", "22"}
	sort.Slice(keys, func(i, j int) bool { return segment.CompareChromosomes(keys[i], keys[j]) < 0 })
	assert.Equal(t, []string{"1", "2", "10", "22", "X", "Y", "MT"}, keys)
	assert.Equal(t, 0, segment.CompareChromosomes("7", "7"))
}

// TestSummarize counts unique matches and chromosomes and sums cM.
func TestSummarize(t *testing.T) {
	st := segment.Summarize([]segment.Segment{
		{MatchName: "Ann", Chromosome: "1", Centimorgans: 10},
		{MatchName: "Ann", Chromosome: "2", Centimorgans: 5.5},
		{MatchName: "Bob", Chromosome: "1", Centimorgans: 2},
	})
	assert.Equal(t, 3, st.TotalSegments)
	assert.Equal(t, 2, st.UniqueMatches)
	assert.Equal(t, 2, st.ChromosomesCovered)
	assert.InDelta(t, 17.5, st.TotalCentimorgans, 1e-9)
}
