package group

import (
	"fmt"

	"github.com/katalvlaran/triangulation/component"
	"github.com/katalvlaran/triangulation/segment"
)

// Verify applies the strict connectivity pass to an arbitrary candidate set:
// it returns the largest subset of members that is connected through overlaps
// of at least minBP bases, in input order.
//
// Unlike Build, Verify does not require a seed-centred candidate set, so it can
// shrink groups that were edited or built at a different threshold.
//
// Errors:
//   - ErrMinOverlap if minBP ≤ 0.
//   - ErrMixedChromosomes if members span chromosomes.
func Verify(members []segment.Segment, minBP int64) ([]segment.Segment, error) {
	if minBP <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrMinOverlap, minBP)
	}
	if err := sameChromosome(members); err != nil {
		return nil, err
	}

	keep := component.New(members, minBP).Largest()
	out := make([]segment.Segment, len(keep))
	for i, k := range keep {
		out[i] = members[k]
	}
	return out, nil
}

// VerifyGroup re-runs the strict pass over g at threshold minBP. The returned
// group keeps ID and Chromosome, carries the Connected policy, and keeps
// Indices aligned with the surviving members. If the seed did not survive,
// Seed becomes the first surviving member (zero when none survive). ok is
// false when fewer than minSize members survive.
//
// Returns ErrMixedChromosomes if g's members span chromosomes.
func VerifyGroup(g Group, minBP int64, minSize int) (out Group, ok bool, err error) {
	if minSize < 2 {
		return Group{}, false, fmt.Errorf("%w: got %d", ErrMinGroupSize, minSize)
	}
	if minBP <= 0 {
		return Group{}, false, fmt.Errorf("%w: got %d", ErrMinOverlap, minBP)
	}
	if err := sameChromosome(g.Members); err != nil {
		return Group{}, false, err
	}

	keep := component.New(g.Members, minBP).Largest()
	out = Group{ID: g.ID, Chromosome: g.Chromosome, Policy: Connected}
	seedKept := false
	for _, k := range keep {
		m := g.Members[k]
		out.Members = append(out.Members, m)
		if k < len(g.Indices) {
			out.Indices = append(out.Indices, g.Indices[k])
		}
		if m == g.Seed {
			seedKept = true
		}
	}
	switch {
	case seedKept:
		out.Seed = g.Seed
	case len(out.Members) > 0:
		out.Seed = out.Members[0]
	}
	if out.Chromosome == "" && len(out.Members) > 0 {
		out.Chromosome = out.Members[0].Chromosome
	}
	return out, len(out.Members) >= minSize, nil
}

func sameChromosome(members []segment.Segment) error {
	for _, m := range members {
		if m.Chromosome != members[0].Chromosome {
			return fmt.Errorf("%w: %q and %q", ErrMixedChromosomes, members[0].Chromosome, m.Chromosome)
		}
	}
	return nil
}
