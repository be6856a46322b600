// Package group partitions one chromosome's segments into triangulation
// groups with a deterministic, greedy, single-pass seed-and-collect algorithm.
//
// Algorithm (Build):
//
//  1. Sort segments by Start, stable on ties (overlap.Index).
//  2. Walk segments in that order; skip any already consumed.
//  3. The current segment is the seed. Collect every not-yet-consumed segment,
//     the seed included, whose overlap with the seed is ≥ MinOverlap.
//     This is a star: members must overlap the seed, not each other.
//  4. With the Connected policy, replace the star by the largest connected
//     component of its pairwise overlap graph (package component).
//  5. If the collected set has ≥ MinGroupSize members, emit it as a Group and
//     mark its members consumed. Otherwise nothing is consumed, and those
//     segments stay available to later seeds.
//
// A segment therefore belongs to at most one group per run (a partition, not a
// cover), and results are fully determined by the input order.
//
// Policies:
//
//	Star       default; membership requires overlap with the seed only
//	Connected  opt-in strict pass; every member is reachable from every other
//	           through overlaps ≥ MinOverlap
//
// Every emitted Group records the Policy that produced it.
//
// Options (functional, validated when Build runs):
//
//	WithMinOverlap(bp)      bp > 0, else ErrMinOverlap
//	WithMinGroupSize(n)     n ≥ 2, else ErrMinGroupSize
//	WithPolicy(p)           Star | Connected
//	WithStrictAbove(n)      strict pass only for stars with more than n members
//	WithIndexStrategy(s)    overlap.Tree | overlap.Scan (identical results)
//	WithContext(ctx)        cancellation, checked once per seed
//	WithTrace(fn)           opt-in decision events
//
// Errors:
//
//	ErrMinOverlap, ErrMinGroupSize  configuration errors, rejected before any work
//	ErrOptionViolation              any other meaningless option value
//	ErrMixedChromosomes             input spans more than one chromosome
//	segment.ErrInvalidSegment       an input segment violates its invariants
//
// Complexity: O(n²) overlap tests in the worst case for n segments; the
// Connected policy adds O(k²) per star of size k.
package group
