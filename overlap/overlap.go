package overlap

import "github.com/katalvlaran/triangulation/segment"

// Bases returns the length in base pairs of the intersection of the
// [Start, End) ranges of a and b, or 0 if they are disjoint.
// Chromosomes are not compared; callers partition first.
func Bases(a, b segment.Segment) int64 {
	lo := max(a.Start, b.Start)
	hi := min(a.End, b.End)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// Overlaps reports whether a and b overlap by at least minBP bases.
func Overlaps(a, b segment.Segment, minBP int64) bool {
	return Bases(a, b) >= minBP
}
