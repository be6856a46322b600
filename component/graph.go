package component

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/exascience/pargo/parallel"

	"github.com/katalvlaran/triangulation/bfs"
	"github.com/katalvlaran/triangulation/core"
	"github.com/katalvlaran/triangulation/overlap"
	"github.com/katalvlaran/triangulation/segment"
)

// parallelThreshold is the candidate count from which adjacency rows are
// computed in parallel batches.
const parallelThreshold = 256

// Graph is an immutable undirected overlap graph over a candidate set.
type Graph struct {
	g *core.Graph
	n int
}

// New builds the overlap graph of members at threshold minBP.
//
// Complexity: O(n²) overlap tests, O(n+E) memory.
func New(members []segment.Segment, minBP int64) *Graph {
	n := len(members)
	rows := make([][]int, n) // rows[i] holds j > i overlapping i

	fill := func(low, high int) {
		for i := low; i < high; i++ {
			for j := i + 1; j < n; j++ {
				if overlap.Overlaps(members[i], members[j], minBP) {
					rows[i] = append(rows[i], j)
				}
			}
		}
	}
	if n >= parallelThreshold {
		parallel.Range(0, n, 0, fill)
	} else {
		fill(0, n)
	}

	g := core.NewGraph()
	for i := 0; i < n; i++ {
		must(g.AddVertex(vid(i)))
	}
	for i, row := range rows {
		for _, j := range row {
			_, err := g.AddEdge(vid(i), vid(j))
			must(err)
		}
	}
	return &Graph{g: g, n: n}
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.n }

// Size returns the number of undirected edges.
func (g *Graph) Size() int { return g.g.EdgeCount() }

// Neighbors returns the ascending neighbor list of v.
func (g *Graph) Neighbors(v int) []int {
	ids, err := g.g.NeighborIDs(vid(v))
	must(err)
	return positions(ids)
}

// Components returns all connected components. Each component lists its
// vertices ascending; components are ordered by their smallest vertex.
//
// One bfs.BFS runs per unvisited vertex, in ascending order.
// Time: O(V+E) traversal plus sorting.
func (g *Graph) Components() [][]int {
	seen := make([]bool, g.n)
	var comps [][]int

	for v0 := 0; v0 < g.n; v0++ {
		if seen[v0] {
			continue
		}
		res, err := bfs.BFS(g.g, vid(v0))
		must(err)
		comp := positions(res.Order)
		for _, v := range comp {
			seen[v] = true
		}
		comps = append(comps, comp)
	}
	return comps
}

// Largest returns the vertices of the largest connected component, ascending.
// Among equally large components the one with the smallest vertex wins.
// An empty graph yields nil.
func (g *Graph) Largest() []int {
	var best []int
	for _, c := range g.Components() {
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

// Connected reports whether the graph has exactly one component.
func (g *Graph) Connected() bool {
	return len(g.Components()) == 1
}

func vid(i int) string { return strconv.Itoa(i) }

// positions converts vertex IDs back to ascending candidate positions.
func positions(ids []string) []int {
	out := make([]int, len(ids))
	for k, id := range ids {
		v, err := strconv.Atoi(id)
		must(err)
		out[k] = v
	}
	slices.Sort(out)
	return out
}

// must panics on errors that cannot occur for a graph built by New:
// vertex IDs are non-empty and unique, edges join distinct vertices once.
func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("component: %v", err))
	}
}
