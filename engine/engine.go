package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/triangulation/group"
	"github.com/katalvlaran/triangulation/logging"
	"github.com/katalvlaran/triangulation/metrics"
	"github.com/katalvlaran/triangulation/schedule"
	"github.com/katalvlaran/triangulation/segment"
)

// Result is the outcome of one BuildGroups run.
type Result struct {
	// RunID uniquely identifies the run.
	RunID string

	// Groups in merged order, IDs 1..n.
	Groups []group.Group

	// Failures lists chromosomes whose processing failed; they contributed no groups.
	Failures []schedule.Failure

	// Skipped lists chromosomes with fewer segments than the minimum group size.
	Skipped []string

	// Input is the number of segments passed in; Considered the number left after the cM filter.
	Input, Considered int

	// Policy used for the run.
	Policy group.Policy

	// Elapsed wall-clock time.
	Elapsed time.Duration
}

// Empty reports whether the run produced no groups. An empty result is not an error.
func (r *Result) Empty() bool { return r == nil || len(r.Groups) == 0 }

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMetrics enables prometheus metrics.
func WithMetrics(m *metrics.Collectors) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithProgress registers a per-chromosome completion callback. Calls are serialized.
func WithProgress(fn func(schedule.Progress)) Option {
	return func(e *Engine) { e.onProgress = fn }
}

// WithTrace registers a group-builder trace callback. With parallel execution
// it is called concurrently from different chromosomes.
func WithTrace(fn func(group.Event)) Option {
	return func(e *Engine) { e.onTrace = fn }
}

// Engine runs triangulation analyses. It is safe for concurrent use and keeps
// no per-run state.
type Engine struct {
	log        *slog.Logger
	metrics    *metrics.Collectors
	onProgress func(schedule.Progress)
	onTrace    func(group.Event)
}

// New returns an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{log: logging.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildGroups runs a one-off Engine; see Engine.BuildGroups.
func BuildGroups(ctx context.Context, segments []segment.Segment, cfg Config, opts ...Option) (*Result, error) {
	return New(opts...).BuildGroups(ctx, segments, cfg)
}

// BuildGroups partitions segments into triangulation groups.
//
// Errors:
//   - ErrConfiguration (joined with the cause) before any processing.
//   - ctx.Err() if the context was cancelled; the Result still carries the
//     groups of every chromosome that completed.
//
// A chromosome that fails is reported in Result.Failures and does not abort the run.
func (e *Engine) BuildGroups(ctx context.Context, segments []segment.Segment, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Input: len(segments), Policy: cfg.Policy}

	input, origin := e.prefilter(segments, cfg)
	res.Considered = len(input)
	e.log.Info("triangulation started",
		"run", res.RunID,
		"segments", res.Input,
		"considered", res.Considered,
		"min_overlap_bp", cfg.MinOverlapBP,
		"min_group_size", cfg.MinGroupSize,
		"policy", cfg.Policy.String(),
		"workers", cfg.Workers,
		"strategy", cfg.Strategy.String(),
	)

	out, err := schedule.Run(ctx, schedule.Split(input), e.partitionFunc(cfg, origin),
		schedule.WithWorkers(cfg.Workers),
		schedule.WithStrategy(cfg.Strategy),
		schedule.WithMinSegments(cfg.MinGroupSize),
		schedule.WithProgress(e.progress(res.RunID)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	res.Groups = out.Items
	for i := range res.Groups {
		res.Groups[i].ID = i + 1
	}
	res.Failures = out.Failures
	res.Skipped = out.Skipped
	res.Elapsed = time.Since(start)

	for _, f := range res.Failures {
		e.log.Warn("chromosome failed", "run", res.RunID, "chromosome", f.Chromosome, "err", f.Err)
	}
	e.log.Info("triangulation finished",
		"run", res.RunID,
		"groups", len(res.Groups),
		"failed", len(res.Failures),
		"skipped", len(res.Skipped),
		"elapsed", res.Elapsed,
	)
	if e.metrics != nil {
		e.metrics.Runs.Inc()
		for _, g := range res.Groups {
			e.metrics.Groups.WithLabelValues(g.Policy.String()).Inc()
		}
		e.metrics.PartitionFailures.Add(float64(len(res.Failures)))
	}

	return res, ctx.Err()
}

// prefilter applies the cM bounds and returns the kept segments together with
// their positions in the original input.
func (e *Engine) prefilter(segments []segment.Segment, cfg Config) ([]segment.Segment, []int) {
	origin := make([]int, 0, len(segments))
	if !cfg.filtering() {
		for i := range segments {
			origin = append(origin, i)
		}
		return segments, origin
	}

	kept := make([]segment.Segment, 0, len(segments))
	for i, s := range segments {
		if segment.InCentimorganRange(s, cfg.MinCM, cfg.MaxCM) {
			kept = append(kept, s)
			origin = append(origin, i)
		}
	}
	e.log.Debug("centimorgan filter applied",
		"min_cm", cfg.MinCM, "max_cm", cfg.MaxCM,
		"before", len(segments), "after", len(kept))
	return kept, origin
}

// partitionFunc builds one chromosome's groups and maps member indices back
// to the caller's input positions.
func (e *Engine) partitionFunc(cfg Config, origin []int) schedule.Func[group.Group] {
	return func(ctx context.Context, p schedule.Partition) ([]group.Group, error) {
		start := time.Now()
		opts := []group.Option{
			group.WithContext(ctx),
			group.WithMinOverlap(cfg.MinOverlapBP),
			group.WithMinGroupSize(cfg.MinGroupSize),
			group.WithPolicy(cfg.Policy),
			group.WithStrictAbove(cfg.StrictAbove),
			group.WithIndexStrategy(cfg.IndexStrategy),
		}
		if e.onTrace != nil {
			opts = append(opts, group.WithTrace(e.onTrace))
		}

		groups, err := group.Build(p.Segments, opts...)
		if e.metrics != nil {
			e.metrics.PartitionSeconds.Observe(time.Since(start).Seconds())
		}
		if err != nil {
			return nil, err
		}
		for gi := range groups {
			for mi, local := range groups[gi].Indices {
				groups[gi].Indices[mi] = origin[p.Indices[local]]
			}
		}
		return groups, nil
	}
}

func (e *Engine) progress(runID string) func(schedule.Progress) {
	return func(p schedule.Progress) {
		e.log.Debug("chromosome done",
			"run", runID,
			"chromosome", p.Chromosome,
			"segments", p.Segments,
			"groups", p.Items,
			"elapsed", p.Elapsed,
			"done", p.Done,
			"total", p.Total,
		)
		if e.onProgress != nil {
			e.onProgress(p)
		}
	}
}

// VerifyGroups re-applies the strict connectivity pass to existing groups at
// threshold minBP and returns those that keep at least minSize members, with
// their IDs preserved.
func (e *Engine) VerifyGroups(groups []group.Group, minBP int64, minSize int) ([]group.Group, error) {
	var out []group.Group
	for _, g := range groups {
		v, ok, err := group.VerifyGroup(g, minBP, minSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		if !ok {
			e.log.Debug("group dropped by verification", "group", g.ID, "kept", v.Size(), "was", g.Size())
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
