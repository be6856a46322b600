package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/triangulation/overlap"
	"github.com/katalvlaran/triangulation/segment"
)

// Sentinel errors for group building.
var (
	// ErrMinOverlap is returned when the overlap threshold is not positive.
	ErrMinOverlap = errors.New("group: minimum overlap must be positive")

	// ErrMinGroupSize is returned when the minimum group size is below 2.
	ErrMinGroupSize = errors.New("group: minimum group size must be at least 2")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("group: invalid option supplied")

	// ErrMixedChromosomes is returned when Build receives more than one chromosome.
	ErrMixedChromosomes = errors.New("group: segments span multiple chromosomes")
)

// Defaults applied by DefaultOptions.
const (
	DefaultMinOverlap   int64 = 1_000_000
	DefaultMinGroupSize       = 2
)

// Policy selects how group membership is decided.
type Policy int

const (
	// Star admits members overlapping the seed.
	Star Policy = iota
	// Connected keeps the largest pairwise-connected component of the star.
	Connected
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Star:
		return "star"
	case Connected:
		return "connected"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy maps "star" or "connected" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "star", "":
		return Star, nil
	case "connected", "strict":
		return Connected, nil
	}
	return Star, fmt.Errorf("%w: unknown policy %q", ErrOptionViolation, s)
}

// EventKind classifies a trace Event.
type EventKind int

const (
	// EventAdded: a candidate overlapped the seed at or above the threshold.
	EventAdded EventKind = iota
	// EventRejected: a candidate overlapped the seed below the threshold.
	EventRejected
	// EventReduced: the strict pass dropped members from a star.
	EventReduced
	// EventEmitted: a group was emitted.
	EventEmitted
	// EventTooSmall: a collected set fell short of the minimum size.
	EventTooSmall
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventRejected:
		return "rejected"
	case EventReduced:
		return "reduced"
	case EventEmitted:
		return "emitted"
	case EventTooSmall:
		return "too_small"
	}
	return "unknown"
}

// Event is one comparison or decision made while building groups.
// Candidate and OverlapBP are set for EventAdded and EventRejected;
// Size is set for the group-level kinds.
type Event struct {
	Kind       EventKind
	Chromosome string
	Seed       segment.Segment
	Candidate  segment.Segment
	OverlapBP  int64
	Threshold  int64
	Size       int
}

// Option configures Build via functional arguments.
// Invalid values are recorded and surfaced when Build is invoked.
type Option func(*Options)

// Options holds the parameters of a Build call.
type Options struct {
	// Ctx allows cancellation; checked once per seed.
	Ctx context.Context

	// MinOverlap is the inclusive overlap threshold in base pairs.
	MinOverlap int64

	// MinGroupSize is the smallest group that is emitted.
	MinGroupSize int

	// Policy selects star or connected membership.
	Policy Policy

	// StrictAbove limits the strict pass to stars with more than StrictAbove members.
	// Zero applies it to every star.
	StrictAbove int

	// IndexStrategy selects the overlap index implementation.
	IndexStrategy overlap.Strategy

	// OnTrace, if non-nil, receives every comparison and decision.
	OnTrace func(Event)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - MinOverlap 1,000,000 bp, MinGroupSize 2
//   - Star policy, strict pass eligible for every star when enabled
//   - interval tree index, no tracing
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		MinOverlap:    DefaultMinOverlap,
		MinGroupSize:  DefaultMinGroupSize,
		Policy:        Star,
		IndexStrategy: overlap.Tree,
	}
}

// Validate reports the first configuration error in o.
func (o Options) Validate() error {
	if o.err != nil {
		return o.err
	}
	if o.MinOverlap <= 0 {
		return fmt.Errorf("%w: got %d", ErrMinOverlap, o.MinOverlap)
	}
	if o.MinGroupSize < 2 {
		return fmt.Errorf("%w: got %d", ErrMinGroupSize, o.MinGroupSize)
	}
	if o.Policy != Star && o.Policy != Connected {
		return fmt.Errorf("%w: policy %d", ErrOptionViolation, int(o.Policy))
	}
	if o.StrictAbove < 0 {
		return fmt.Errorf("%w: StrictAbove cannot be negative (%d)", ErrOptionViolation, o.StrictAbove)
	}
	return nil
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMinOverlap sets the inclusive overlap threshold. bp ≤ 0 → ErrMinOverlap.
func WithMinOverlap(bp int64) Option {
	return func(o *Options) {
		if bp <= 0 {
			o.err = fmt.Errorf("%w: got %d", ErrMinOverlap, bp)
			return
		}
		o.MinOverlap = bp
	}
}

// WithMinGroupSize sets the smallest emitted group. n < 2 → ErrMinGroupSize.
func WithMinGroupSize(n int) Option {
	return func(o *Options) {
		if n < 2 {
			o.err = fmt.Errorf("%w: got %d", ErrMinGroupSize, n)
			return
		}
		o.MinGroupSize = n
	}
}

// WithPolicy selects the membership policy.
func WithPolicy(p Policy) Option {
	return func(o *Options) {
		if p != Star && p != Connected {
			o.err = fmt.Errorf("%w: policy %d", ErrOptionViolation, int(p))
			return
		}
		o.Policy = p
	}
}

// WithStrictAbove limits the Connected pass to stars larger than n.
//
//	n > 0: only stars with more than n members are checked
//	n == 0: every star is checked
//	n < 0: invalid option → ErrOptionViolation
func WithStrictAbove(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: StrictAbove cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.StrictAbove = n
	}
}

// WithIndexStrategy selects the overlap index implementation.
func WithIndexStrategy(s overlap.Strategy) Option {
	return func(o *Options) { o.IndexStrategy = s }
}

// WithTrace registers a callback receiving every comparison and decision.
// The callback runs synchronously on the building goroutine.
func WithTrace(fn func(Event)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnTrace = fn
		}
	}
}
