package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Func computes the items of one partition. It must not touch any other
// partition's data.
type Func[T any] func(ctx context.Context, p Partition) ([]T, error)

// Outcome is the merged result of Run.
type Outcome[T any] struct {
	// Items of every successful partition, in partition order.
	Items []T

	// Failures lists partitions that errored, panicked or were cancelled.
	Failures []Failure

	// Skipped lists chromosomes below MinSegments.
	Skipped []string
}

// Err joins all failures, or returns nil.
func (o Outcome[T]) Err() error {
	errs := make([]error, len(o.Failures))
	for i, f := range o.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// slot holds one partition's result; each slot is written by one goroutine.
type slot[T any] struct {
	items []T
	err   error
	ran   bool
}

// Run applies fn to every partition and merges the results.
// The returned error is non-nil only for invalid options; partition
// failures are reported in Outcome.Failures.
func Run[T any](ctx context.Context, parts []Partition, fn Func[T], opts ...Option) (Outcome[T], error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Outcome[T]{}, o.err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		out       Outcome[T]
		scheduled []int
	)
	for i, p := range parts {
		if len(p.Segments) < o.MinSegments {
			out.Skipped = append(out.Skipped, p.Chromosome)
			continue
		}
		scheduled = append(scheduled, i)
	}

	slots := make([]slot[T], len(parts))
	r := &reporter{fn: o.OnProgress, total: len(scheduled)}
	runOne := func(i int) {
		p := parts[i]
		if err := ctx.Err(); err != nil {
			slots[i] = slot[T]{err: err, ran: true}
			r.report(Progress{Chromosome: p.Chromosome, Segments: len(p.Segments), Err: err})
			return
		}
		start := time.Now()
		items, err := call(ctx, fn, p)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			items = nil
		}
		slots[i] = slot[T]{items: items, err: err, ran: true}
		r.report(Progress{
			Chromosome: p.Chromosome,
			Segments:   len(p.Segments),
			Items:      len(items),
			Err:        err,
			Elapsed:    time.Since(start),
		})
	}

	switch o.Strategy {
	case Sequential:
		for _, i := range scheduled {
			runOne(i)
		}
	default:
		var g errgroup.Group
		g.SetLimit(o.Workers)
		for _, i := range scheduled {
			g.Go(func() error {
				runOne(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	for i, s := range slots {
		if !s.ran {
			continue
		}
		if s.err != nil {
			out.Failures = append(out.Failures, Failure{Chromosome: parts[i].Chromosome, Err: s.err})
			continue
		}
		out.Items = append(out.Items, s.items...)
	}
	return out, nil
}

// call invokes fn, converting a panic into an error wrapping ErrPartitionPanic.
func call[T any](ctx context.Context, fn Func[T], p Partition) (items []T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			items = nil
			err = fmt.Errorf("%w: %v", ErrPartitionPanic, rec)
		}
	}()
	return fn(ctx, p)
}

// reporter serializes progress callbacks.
type reporter struct {
	mu    sync.Mutex
	fn    func(Progress)
	done  int
	total int
}

func (r *reporter) report(p Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
	if r.fn == nil {
		return
	}
	p.Done = r.done
	p.Total = r.total
	r.fn(p)
}
