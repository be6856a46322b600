package overlap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/biogo/store/interval"

	"github.com/katalvlaran/triangulation/segment"
)

// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
var ErrUnknownStrategy = errors.New("overlap: unknown index strategy")

// Strategy selects how an Index answers overlap queries.
type Strategy int

const (
	// Tree answers queries through an interval tree.
	Tree Strategy = iota
	// Scan answers queries with a linear pass over the candidates.
	Scan
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Tree:
		return "tree"
	case Scan:
		return "scan"
	}
	return "unknown"
}

// ParseStrategy maps "tree" (or "") and "scan" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "tree", "":
		return Tree, nil
	case "scan":
		return Scan, nil
	}
	return Tree, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Option configures an Index.
type Option func(*Index)

// WithStrategy sets the query strategy. Unknown values fall back to Scan.
func WithStrategy(s Strategy) Option {
	return func(ix *Index) {
		if s != Tree {
			s = Scan
		}
		ix.strategy = s
	}
}

// Index holds one chromosome's segments sorted by Start.
// Positions (0..Len()-1) refer to the sorted order.
type Index struct {
	sorted   []segment.Segment
	origin   []int // origin[pos] = index in the constructor input
	strategy Strategy
	tree     *interval.IntTree
}

// NewIndex builds an Index over segments. The input slice is not modified.
// Ties on Start keep input order.
func NewIndex(segments []segment.Segment, opts ...Option) *Index {
	ix := &Index{strategy: Tree}
	for _, opt := range opts {
		opt(ix)
	}

	ix.origin = make([]int, len(segments))
	for i := range ix.origin {
		ix.origin[i] = i
	}
	sort.SliceStable(ix.origin, func(i, j int) bool {
		return segments[ix.origin[i]].Start < segments[ix.origin[j]].Start
	})
	ix.sorted = make([]segment.Segment, len(segments))
	for pos, i := range ix.origin {
		ix.sorted[pos] = segments[i]
	}

	if ix.strategy == Tree && !ix.buildTree() {
		ix.strategy = Scan
	}
	return ix
}

// buildTree inserts every segment; it reports false if the tree rejected one
// (inverted range), in which case the Index degrades to Scan.
func (ix *Index) buildTree() bool {
	t := &interval.IntTree{}
	for pos, s := range ix.sorted {
		if err := t.Insert(entry{pos: pos, r: interval.IntRange{Start: int(s.Start), End: int(s.End)}}, true); err != nil {
			return false
		}
	}
	t.AdjustRanges()
	ix.tree = t
	return true
}

// Len returns the number of indexed segments.
func (ix *Index) Len() int { return len(ix.sorted) }

// At returns the segment at sorted position pos.
func (ix *Index) At(pos int) segment.Segment { return ix.sorted[pos] }

// Origin returns the constructor-input index of the segment at sorted position pos.
func (ix *Index) Origin(pos int) int { return ix.origin[pos] }

// Strategy reports the strategy actually in use.
func (ix *Index) Strategy() Strategy { return ix.strategy }

// Positions returns 0..Len()-1, the full candidate set in scan order.
func (ix *Index) Positions() []int {
	out := make([]int, len(ix.sorted))
	for i := range out {
		out[i] = i
	}
	return out
}

// OverlappingWith returns the subsequence of candidates (sorted positions)
// whose segment overlaps the seed's segment by at least minBP bases.
// Candidate order is preserved. seed itself is returned if it is a candidate
// and minBP ≤ its length.
func (ix *Index) OverlappingWith(seed int, candidates []int, minBP int64) []int {
	s := ix.sorted[seed]
	if ix.strategy == Scan || minBP <= 0 {
		return ix.scan(s, candidates, minBP)
	}

	hits := make(map[int]struct{})
	ix.tree.DoMatching(func(iv interval.IntInterface) (done bool) {
		hits[iv.(entry).pos] = struct{}{}
		return false
	}, query{Start: int(s.Start), End: int(s.End)})

	var out []int
	for _, c := range candidates {
		if _, ok := hits[c]; ok && Bases(s, ix.sorted[c]) >= minBP {
			out = append(out, c)
		}
	}
	return out
}

func (ix *Index) scan(s segment.Segment, candidates []int, minBP int64) []int {
	var out []int
	for _, c := range candidates {
		if Bases(s, ix.sorted[c]) >= minBP {
			out = append(out, c)
		}
	}
	return out
}

// entry is the interval tree element for one sorted position.
type entry struct {
	pos int
	r   interval.IntRange
}

func (e entry) ID() uintptr              { return uintptr(e.pos) }
func (e entry) Range() interval.IntRange { return e.r }
func (e entry) Overlap(b interval.IntRange) bool {
	return e.r.Start < b.End && b.Start < e.r.End
}

// query is a half-open [Start, End) range: only ranges sharing at least one
// base match, which is all a positive minBP can ever accept.
type query interval.IntRange

func (q query) Overlap(b interval.IntRange) bool {
	return b.Start < q.End && q.Start < b.End
}
