// Package schedule splits segments into per-chromosome partitions and runs a
// pure per-partition function over them, sequentially or as a bounded
// data-parallel map.
//
// Guarantees:
//
//   - Partitions are keyed by exact chromosome string and never share data,
//     so workers need no locks.
//   - Merged output follows partition order (segment.CompareChromosomes),
//     never completion order; the worker count changes wall-clock time only.
//   - A failing partition (error or panic) contributes zero items and is
//     reported as a Failure; every other partition still completes.
//   - Progress callbacks are serialized: one call per finished partition.
//   - Cancelling the context marks partitions that had not finished as failed
//     with the context error.
//
// Parallel execution uses golang.org/x/sync/errgroup with SetLimit(workers).
package schedule
