package segment

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// FilterByCentimorgans returns the segments whose Centimorgans value lies in the
// closed interval [minCM, maxCM], preserving input order. Pass math.Inf(1) as
// maxCM for an unbounded upper limit.
//
// The filter is meant to run on the raw input before grouping: excluded
// segments never take part in overlap comparisons, so it can change which
// groups form and their sizes.
//
// Errors:
//   - ErrInvalidRange if either bound is NaN or minCM > maxCM.
//
// Complexity: O(n) time, O(n) space.
func FilterByCentimorgans(segments []Segment, minCM, maxCM float64) ([]Segment, error) {
	if math.IsNaN(minCM) || math.IsNaN(maxCM) {
		return nil, fmt.Errorf("%w: NaN bound", ErrInvalidRange)
	}
	if minCM > maxCM {
		return nil, fmt.Errorf("%w: min %v > max %v", ErrInvalidRange, minCM, maxCM)
	}

	return lo.Filter(segments, func(s Segment, _ int) bool {
		return InCentimorganRange(s, minCM, maxCM)
	}), nil
}

// InCentimorganRange reports whether s.Centimorgans lies in [minCM, maxCM].
// It does not validate the bounds; a NaN bound matches nothing.
func InCentimorganRange(s Segment, minCM, maxCM float64) bool {
	return s.Centimorgans >= minCM && s.Centimorgans <= maxCM
}

// CompareChromosomes orders chromosome keys for display and merge output:
// numeric keys ascending, then "X", then "Y", then any remaining keys
// lexicographically. It returns -1, 0 or +1.
//
// The order never affects which segments share a partition; that is decided by
// exact string equality.
func CompareChromosomes(a, b string) int {
	ra, na := chromosomeRank(a)
	rb, nb := chromosomeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if ra == rankNumeric && na != nb {
		if na < nb {
			return -1
		}
		return 1
	}

	return strings.Compare(a, b)
}

const (
	rankNumeric = iota
	rankX
	rankY
	rankOther
)

func chromosomeRank(c string) (rank int, n int) {
	if v, err := strconv.Atoi(c); err == nil && v >= 0 {
		return rankNumeric, v
	}
	switch c {
	case "X":
		return rankX, 0
	case "Y":
		return rankY, 0
	}
	return rankOther, 0
}
