package report

import (
	"slices"

	"github.com/katalvlaran/triangulation/group"
)

// Rank returns a copy of groups sorted by size, largest first. Equal sizes
// keep their input order.
func Rank(groups []group.Group) []group.Group {
	out := slices.Clone(groups)
	slices.SortStableFunc(out, func(a, b group.Group) int { return b.Size() - a.Size() })
	return out
}
