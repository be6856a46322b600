// Package overlap provides the base-pair overlap predicate between two
// segments and a per-chromosome Index answering "which of these candidates
// overlap this seed by at least T bases?".
//
// Predicate:
//
//	Bases(a, b)       = max(0, min(a.End, b.End) − max(a.Start, b.Start))
//	Overlaps(a, b, T) = Bases(a, b) ≥ T
//
// T is an inclusive base-pair count supplied by the caller; it is never a
// fraction of segment length.
//
// Index:
//
//   - NewIndex sorts segments by Start, stable on ties, so the scan order that
//     drives greedy grouping is reproducible for identical input order.
//   - Two strategies answer OverlappingWith with identical results:
//     Tree (default): an interval tree from github.com/biogo/store/interval;
//     Scan: a linear pass over the candidates.
//
// Complexity:
//
//	NewIndex        O(n·log n)
//	OverlappingWith Tree: O(log n + k + c), Scan: O(c)
//	                (k = tree hits, c = len(candidates))
//
// An Index is read-only after construction and safe for concurrent queries.
package overlap
