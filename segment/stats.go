package segment

import "github.com/samber/lo"

// Stats summarises a segment collection.
type Stats struct {
	TotalSegments      int
	UniqueMatches      int
	ChromosomesCovered int
	TotalCentimorgans  float64
}

// Summarize computes Stats over segments. Match names and chromosome keys are
// compared as exact strings.
func Summarize(segments []Segment) Stats {
	return Stats{
		TotalSegments:      len(segments),
		UniqueMatches:      len(lo.UniqBy(segments, func(s Segment) string { return s.MatchName })),
		ChromosomesCovered: len(lo.UniqBy(segments, func(s Segment) string { return s.Chromosome })),
		TotalCentimorgans:  lo.SumBy(segments, func(s Segment) float64 { return s.Centimorgans }),
	}
}
