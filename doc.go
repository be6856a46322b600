// Package triangulation finds groups of DNA matches who share a segment at
// the same chromosome region, a signal that they descend from a common
// ancestor there.
//
// The work is split across small packages:
//
//	segment/    the Segment value, validation, cM filter, chromosome order, statistics
//	overlap/    overlap arithmetic and a per-chromosome index (interval tree or scan)
//	core/       thread-safe undirected graph with string vertex ids
//	bfs/        breadth-first traversal over core.Graph with hooks and depth limits
//	component/  overlap graph and connected components for the strict policy
//	group/      seed-and-collect group builder for one chromosome
//	schedule/   per-chromosome partitions and a bounded parallel runner
//	engine/     BuildGroups and VerifyGroups over a whole dataset
//	report/     surnames, ranking, text reports, CSV and XLSX export
//	ingest/     CSV and XLSX segment readers
//	config/     YAML run settings
//	logging/    slog setup
//	metrics/    prometheus collectors
//
// Quick example:
//
//	res, err := engine.BuildGroups(ctx, segments, engine.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	fmt.Println(report.Render(res.Groups, report.Summary))
//
// The command in cmd/triangulate wires all of it together.
package triangulation
