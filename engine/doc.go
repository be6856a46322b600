// Package engine is the entry point of the triangulation core: it validates a
// run configuration, applies the optional centimorgan pre-filter, splits the
// input per chromosome, runs the group builder on every partition through the
// scheduler and returns the merged groups as an explicit Result value.
//
//	res, err := engine.BuildGroups(ctx, segments, engine.DefaultConfig())
//	if errors.Is(err, engine.ErrConfiguration) { /* bad parameters */ }
//	for _, f := range res.Failures { /* chromosome f.Chromosome failed */ }
//
// An Engine carries collaborators only (logger, metrics, callbacks); it keeps
// no state between runs, so report and export functions take the group list
// from the Result rather than from the engine.
//
// Group IDs are assigned 1..n in merged order (chromosome order, then scan
// order within a chromosome). Group.Indices refer to positions in the slice
// passed to BuildGroups, before any filtering.
package engine
