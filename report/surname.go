package report

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/katalvlaran/triangulation/segment"
)

// UnknownSurname labels members whose name has no usable word.
const UnknownSurname = "Unknown"

var titles = []string{"Mr.", "Mrs.", "Dr.", "Ph.D."}

// Surname derives the family label used to group report output.
func Surname(matchName string) string {
	for _, t := range titles {
		matchName = strings.ReplaceAll(matchName, t, "")
	}
	parts := strings.Fields(matchName)
	if len(parts) == 0 {
		return UnknownSurname
	}
	return parts[len(parts)-1]
}

// Family is the members of one group sharing a surname.
type Family struct {
	Surname string
	Members []segment.Segment
}

// Families groups members by surname. Families are ordered by size, largest
// first, with ties in order of first appearance; members within a family are
// ordered by centimorgans, strongest first, with ties in input order.
func Families(members []segment.Segment) []Family {
	order := surnames(members)
	fams := make([]Family, len(order))
	pos := make(map[string]int, len(order))
	for i, s := range order {
		fams[i].Surname = s
		pos[s] = i
	}
	for _, m := range members {
		i := pos[Surname(m.MatchName)]
		fams[i].Members = append(fams[i].Members, m)
	}
	for i := range fams {
		slices.SortStableFunc(fams[i].Members, func(a, b segment.Segment) int {
			switch {
			case a.Centimorgans > b.Centimorgans:
				return -1
			case a.Centimorgans < b.Centimorgans:
				return 1
			}
			return 0
		})
	}
	slices.SortStableFunc(fams, func(a, b Family) int { return len(b.Members) - len(a.Members) })
	return fams
}

// surnames lists distinct surnames of members in first-appearance order.
func surnames(members []segment.Segment) []string {
	return lo.Uniq(lo.Map(members, func(m segment.Segment, _ int) string { return Surname(m.MatchName) }))
}
