package group

import (
	"fmt"

	"github.com/katalvlaran/triangulation/component"
	"github.com/katalvlaran/triangulation/overlap"
	"github.com/katalvlaran/triangulation/segment"
)

// builder encapsulates mutable seed-and-collect state for one chromosome.
type builder struct {
	opts       Options
	chromosome string
	ix         *overlap.Index
	remaining  []int // unconsumed sorted positions, ascending
	groups     []Group
}

// Build partitions the segments of one chromosome into triangulation groups.
//
// Returns ErrMinOverlap, ErrMinGroupSize or ErrOptionViolation for bad
// options, ErrMixedChromosomes if segments disagree on the chromosome, an
// error wrapping segment.ErrInvalidSegment for a malformed segment, or the
// context error on cancellation. Cancellation never yields partial groups.
//
// Empty input, or fewer segments than MinGroupSize, yields no groups and no error.
func Build(segments []segment.Segment, opts ...Option) ([]Group, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, nil
	}

	chromosome := segments[0].Chromosome
	for _, s := range segments {
		if s.Chromosome != chromosome {
			return nil, fmt.Errorf("%w: %q and %q", ErrMixedChromosomes, chromosome, s.Chromosome)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	if len(segments) < o.MinGroupSize {
		return nil, nil
	}

	ix := overlap.NewIndex(segments, overlap.WithStrategy(o.IndexStrategy))
	b := &builder{
		opts:       o,
		chromosome: chromosome,
		ix:         ix,
		remaining:  ix.Positions(),
	}
	if err := b.run(); err != nil {
		return nil, err
	}
	return b.groups, nil
}

// run tries every sorted position as a seed, in order.
func (b *builder) run() error {
	consumed := make([]bool, b.ix.Len())
	for seed := 0; seed < b.ix.Len(); seed++ {
		// cancellation check (once per seed)
		select {
		case <-b.opts.Ctx.Done():
			return b.opts.Ctx.Err()
		default:
		}
		if consumed[seed] {
			continue
		}

		members := b.collect(seed)
		applied := Star
		if b.opts.Policy == Connected && len(members) > b.opts.StrictAbove {
			members = b.strict(seed, members)
			applied = Connected
		}
		if len(members) < b.opts.MinGroupSize {
			b.trace(Event{Kind: EventTooSmall, Seed: b.ix.At(seed), Size: len(members)})
			continue
		}

		for _, pos := range members {
			consumed[pos] = true
		}
		b.remaining = pruneConsumed(b.remaining, consumed)
		b.emit(seed, members, applied)
	}
	return nil
}

// collect returns the star around seed over the unconsumed positions,
// ascending. The seed is always a member.
func (b *builder) collect(seed int) []int {
	members := b.ix.OverlappingWith(seed, b.remaining, b.opts.MinOverlap)
	if b.opts.OnTrace != nil {
		b.traceComparisons(seed, members)
	}
	return withSeed(members, seed)
}

// strict narrows members to the largest connected component of their overlap graph.
// A star built at the same threshold is connected through its seed, so inside
// Build this never drops a member; Verify and VerifyGroup are where groups shrink.
func (b *builder) strict(seed int, members []int) []int {
	segs := make([]segment.Segment, len(members))
	for i, pos := range members {
		segs[i] = b.ix.At(pos)
	}
	keep := component.New(segs, b.opts.MinOverlap).Largest()
	if len(keep) == len(members) {
		return members
	}

	out := make([]int, len(keep))
	for i, k := range keep {
		out[i] = members[k]
	}
	b.trace(Event{Kind: EventReduced, Seed: b.ix.At(seed), Size: len(out)})
	return out
}

// emit records a group; applied is the policy that actually shaped members.
func (b *builder) emit(seed int, members []int, applied Policy) {
	g := Group{
		Chromosome: b.chromosome,
		Seed:       b.ix.At(seed),
		Members:    make([]segment.Segment, len(members)),
		Indices:    make([]int, len(members)),
		Policy:     applied,
	}
	for i, pos := range members {
		g.Members[i] = b.ix.At(pos)
		g.Indices[i] = b.ix.Origin(pos)
	}
	b.groups = append(b.groups, g)
	b.trace(Event{Kind: EventEmitted, Seed: g.Seed, Size: g.Size()})
}

// traceComparisons reports one event per seed/candidate comparison.
func (b *builder) traceComparisons(seed int, members []int) {
	s := b.ix.At(seed)
	added := make(map[int]bool, len(members))
	for _, m := range members {
		added[m] = true
	}
	for _, c := range b.remaining {
		if c == seed {
			continue
		}
		cand := b.ix.At(c)
		kind := EventRejected
		if added[c] {
			kind = EventAdded
		}
		b.trace(Event{Kind: kind, Seed: s, Candidate: cand, OverlapBP: overlap.Bases(s, cand)})
	}
}

func (b *builder) trace(e Event) {
	if b.opts.OnTrace == nil {
		return
	}
	e.Chromosome = b.chromosome
	e.Threshold = b.opts.MinOverlap
	b.opts.OnTrace(e)
}

// withSeed inserts seed into the ascending slice members if it is missing.
func withSeed(members []int, seed int) []int {
	for i, m := range members {
		if m == seed {
			return members
		}
		if m > seed {
			out := make([]int, 0, len(members)+1)
			out = append(out, members[:i]...)
			out = append(out, seed)
			return append(out, members[i:]...)
		}
	}
	return append(members, seed)
}

func pruneConsumed(remaining []int, consumed []bool) []int {
	out := remaining[:0]
	for _, pos := range remaining {
		if !consumed[pos] {
			out = append(out, pos)
		}
	}
	return out
}
