package group_test

import (
	"fmt"

	"github.com/katalvlaran/triangulation/group"
	"github.com/katalvlaran/triangulation/segment"
)

// ExampleBuild groups two overlapping matches on chromosome 1 and leaves the
// distant third segment ungrouped.
func ExampleBuild() {
	in := []segment.Segment{
		{MatchName: "Ann Smith", Chromosome: "1", Start: 0, End: 10_000_000, Centimorgans: 20},
		{MatchName: "Bob Jones", Chromosome: "1", Start: 5_000_000, End: 15_000_000, Centimorgans: 15},
		{MatchName: "Cy Brown", Chromosome: "1", Start: 20_000_000, End: 30_000_000, Centimorgans: 10},
	}
	groups, err := group.Build(in, group.WithMinOverlap(1_000_000))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, g := range groups {
		start, end := g.Bounds()
		fmt.Printf("chr%s %d-%d size=%d policy=%s\n", g.Chromosome, start, end, g.Size(), g.Policy)
	}
	// Output:
	// chr1 0-15000000 size=2 policy=star
}
