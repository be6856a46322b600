package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/triangulation/group"
	"github.com/katalvlaran/triangulation/overlap"
	"github.com/katalvlaran/triangulation/schedule"
	"github.com/katalvlaran/triangulation/segment"
)

// ErrConfiguration classifies every parameter error detected before a run starts.
// It is always joined with the specific cause (group.ErrMinOverlap, ...).
var ErrConfiguration = errors.New("engine: invalid configuration")

// Config holds the parameters of one BuildGroups run.
type Config struct {
	// MinOverlapBP is the inclusive overlap threshold in base pairs (> 0).
	MinOverlapBP int64

	// MinGroupSize is the smallest emitted group (≥ 2).
	MinGroupSize int

	// Policy selects star (default) or connected membership.
	Policy group.Policy

	// StrictAbove limits the connected pass to stars larger than this.
	StrictAbove int

	// MinCM and MaxCM bound the centimorgan pre-filter, inclusive.
	// The filter is skipped when MinCM ≤ 0 and MaxCM is +Inf.
	MinCM, MaxCM float64

	// Workers bounds concurrently processed chromosomes.
	Workers int

	// Strategy selects parallel or sequential execution.
	Strategy schedule.Strategy

	// IndexStrategy selects the overlap index implementation.
	IndexStrategy overlap.Strategy
}

// DefaultConfig returns a 1 Mb threshold, groups of 2+, star membership,
// no cM filter and one worker per core minus one.
func DefaultConfig() Config {
	return Config{
		MinOverlapBP:  group.DefaultMinOverlap,
		MinGroupSize:  group.DefaultMinGroupSize,
		Policy:        group.Star,
		MinCM:         0,
		MaxCM:         math.Inf(1),
		Workers:       schedule.DefaultWorkers(),
		Strategy:      schedule.Parallel,
		IndexStrategy: overlap.Tree,
	}
}

// Validate reports the first configuration error, wrapped with ErrConfiguration.
func (c Config) Validate() error {
	if err := c.groupOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if _, err := segment.FilterByCentimorgans(nil, c.MinCM, c.MaxCM); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %w: workers must be ≥ 1 (%d)", ErrConfiguration, schedule.ErrOptionViolation, c.Workers)
	}
	if c.Strategy != schedule.Parallel && c.Strategy != schedule.Sequential {
		return fmt.Errorf("%w: %w: strategy %d", ErrConfiguration, schedule.ErrOptionViolation, int(c.Strategy))
	}
	return nil
}

// filtering reports whether the cM pre-filter changes anything.
func (c Config) filtering() bool {
	return c.MinCM > 0 || !math.IsInf(c.MaxCM, 1)
}

func (c Config) groupOptions() group.Options {
	o := group.DefaultOptions()
	o.MinOverlap = c.MinOverlapBP
	o.MinGroupSize = c.MinGroupSize
	o.Policy = c.Policy
	o.StrictAbove = c.StrictAbove
	o.IndexStrategy = c.IndexStrategy
	return o
}
