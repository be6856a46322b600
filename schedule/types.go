package schedule

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// Sentinel errors for scheduling.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("schedule: invalid option supplied")

	// ErrPartitionPanic wraps a panic recovered from a partition function.
	ErrPartitionPanic = errors.New("schedule: partition panicked")
)

// Strategy selects how partitions are executed.
type Strategy int

const (
	// Parallel runs partitions on a bounded pool of goroutines.
	Parallel Strategy = iota
	// Sequential runs partitions one after another on the calling goroutine.
	Sequential
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Parallel:
		return "parallel"
	case Sequential:
		return "sequential"
	}
	return "unknown"
}

// ParseStrategy maps "parallel" or "sequential" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "parallel", "":
		return Parallel, nil
	case "sequential":
		return Sequential, nil
	}
	return Parallel, fmt.Errorf("%w: unknown strategy %q", ErrOptionViolation, s)
}

// Failure records a partition that contributed no results.
type Failure struct {
	Chromosome string
	Err        error
}

// Error implements error.
func (f Failure) Error() string {
	return fmt.Sprintf("chromosome %s: %v", f.Chromosome, f.Err)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (f Failure) Unwrap() error { return f.Err }

// Progress describes one finished partition.
type Progress struct {
	Chromosome string
	Segments   int
	Items      int
	Err        error
	Elapsed    time.Duration
	Done       int // partitions finished so far, this one included
	Total      int // partitions scheduled
}

// Option configures Run.
type Option func(*Options)

// Options holds execution parameters.
type Options struct {
	// Workers bounds concurrent partitions in Parallel mode.
	Workers int

	// Strategy selects Parallel or Sequential execution.
	Strategy Strategy

	// MinSegments skips partitions with fewer segments; they are reported in Outcome.Skipped.
	MinSegments int

	// OnProgress, if non-nil, is called once per finished partition, never concurrently.
	OnProgress func(Progress)

	err error
}

// DefaultWorkers returns one worker per available core minus one, at least 1.
func DefaultWorkers() int {
	return max(1, runtime.NumCPU()-1)
}

// DefaultOptions returns Parallel execution with DefaultWorkers and no skipping.
func DefaultOptions() Options {
	return Options{
		Workers:  DefaultWorkers(),
		Strategy: Parallel,
	}
}

// WithWorkers bounds parallelism. n < 1 → ErrOptionViolation.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers must be ≥ 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithStrategy selects Parallel or Sequential execution.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		if s != Parallel && s != Sequential {
			o.err = fmt.Errorf("%w: strategy %d", ErrOptionViolation, int(s))
			return
		}
		o.Strategy = s
	}
}

// WithMinSegments skips partitions smaller than n before scheduling.
func WithMinSegments(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MinSegments cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MinSegments = n
	}
}

// WithProgress registers a per-partition completion callback.
func WithProgress(fn func(Progress)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnProgress = fn
		}
	}
}
