package group

import "github.com/katalvlaran/triangulation/segment"

// Group is a triangulation group: at least MinGroupSize segments on one
// chromosome, collected around a seed.
//
// Members are listed in scan order (Start ascending, input order on ties).
// Indices[i] is the position of Members[i] in the slice that was grouped,
// which makes segment identity explicit even when two segments are equal
// by value.
type Group struct {
	// ID is assigned by the caller that merges groups (1-based); Build leaves it 0.
	ID int

	// Chromosome shared by every member.
	Chromosome string

	// Seed is the segment the group was collected around.
	Seed segment.Segment

	// Members of the group, the seed included.
	Members []segment.Segment

	// Indices maps each member back to its input position.
	Indices []int

	// Policy that produced the membership.
	Policy Policy
}

// Size returns the number of members.
func (g Group) Size() int { return len(g.Members) }

// Bounds returns the smallest member Start and the largest member End.
func (g Group) Bounds() (start, end int64) {
	if len(g.Members) == 0 {
		return 0, 0
	}
	start, end = g.Members[0].Start, g.Members[0].End
	for _, m := range g.Members[1:] {
		start = min(start, m.Start)
		end = max(end, m.End)
	}
	return start, end
}

// SpanMb returns (end-start)/1,000,000 over Bounds.
func (g Group) SpanMb() float64 {
	start, end := g.Bounds()
	return float64(end-start) / 1_000_000
}

// TotalCM sums member centimorgans.
func (g Group) TotalCM() float64 {
	var total float64
	for _, m := range g.Members {
		total += m.Centimorgans
	}
	return total
}

// AverageCM returns TotalCM()/Size(), or 0 for an empty group.
func (g Group) AverageCM() float64 {
	if len(g.Members) == 0 {
		return 0
	}
	return g.TotalCM() / float64(len(g.Members))
}
