package schedule

import (
	"sort"

	"github.com/katalvlaran/triangulation/segment"
)

// Partition is the slice of input segments sharing one chromosome key.
type Partition struct {
	// Chromosome key shared by every segment.
	Chromosome string

	// Segments in input order.
	Segments []segment.Segment

	// Indices[i] is the input position of Segments[i].
	Indices []int
}

// Split groups segments by exact chromosome string. Partitions are ordered by
// segment.CompareChromosomes; within a partition input order is kept.
func Split(segments []segment.Segment) []Partition {
	byKey := make(map[string]*Partition)
	var keys []string
	for i, s := range segments {
		p, ok := byKey[s.Chromosome]
		if !ok {
			p = &Partition{Chromosome: s.Chromosome}
			byKey[s.Chromosome] = p
			keys = append(keys, s.Chromosome)
		}
		p.Segments = append(p.Segments, s)
		p.Indices = append(p.Indices, i)
	}

	sort.Slice(keys, func(i, j int) bool { return segment.CompareChromosomes(keys[i], keys[j]) < 0 })
	out := make([]Partition, len(keys))
	for i, k := range keys {
		out[i] = *byKey[k]
	}
	return out
}
