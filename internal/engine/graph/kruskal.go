package graph

import (
	"cmp"
	"slices"
)

// MST is a minimum spanning tree, or a forest when the graph is disconnected.
type MST struct {
	// Edges are indices into Graph.Edges in selection order.
	Edges  []int
	Weight float64
}

// Kruskal selects a minimum spanning tree. Edges of equal cost are taken in
// index order. The union-find state on g is reset first.
func Kruskal(g *Graph) MST {
	g.Reset()

	var mst MST
	if len(g.Nodes) < 2 {
		return mst
	}

	order := make([]int, len(g.Edges))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(g.Edges[a].Cost, g.Edges[b].Cost)
	})

	want := len(g.Nodes) - 1
	for _, i := range order {
		e := g.Edges[i]
		if !g.Union(e.From, e.To) {
			continue
		}
		mst.Edges = append(mst.Edges, i)
		mst.Weight += e.Cost
		if len(mst.Edges) == want {
			break
		}
	}

	return mst
}
