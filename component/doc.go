// Package component builds the undirected overlap graph over a candidate set
// of same-chromosome segments and finds its connected components.
//
// Vertices are candidate positions 0..n-1. An edge joins i and j (i ≠ j) iff
// overlap.Bases(members[i], members[j]) ≥ minBP. This is the strict
// connectivity check used by the group package: a group kept by it has a
// path of threshold overlaps between every pair of members.
//
// Overlap tests run once, with O(n²) comparisons; rows are filled in
// parallel by github.com/exascience/pargo for large candidate sets, each row
// written by exactly one batch. The edges are then stored in a core.Graph.
// Callers running very large candidate sets should bound n before calling New.
//
// Components are found with bfs.BFS from each unvisited vertex in ascending
// order, which makes the result deterministic:
//
//	Components()  every component, members ascending, ordered by smallest member
//	Largest()     the largest component; ties go to the earlier component
//	Connected()   true iff there is exactly one component
package component
