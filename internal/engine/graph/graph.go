// Package graph turns a triangulation into an index-linked graph and selects
// its minimum spanning tree.
package graph

import (
	"github.com/KirkDiggler/dungeon-api/internal/engine/geometry"
)

// Node is a graph vertex. Parent and Rank belong to the union-find forest
// used by Kruskal.
type Node struct {
	Location geometry.Point
	Edges    []int
	Parent   int
	Rank     int
}

// Edge joins two nodes by index.
type Edge struct {
	From int
	To   int
	Cost float64
}

// Graph stores nodes and edges in flat slices. Indices are stable.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// New returns an empty graph
func New() *Graph {
	return &Graph{}
}

// AddNode appends a node at p and returns its index.
func (g *Graph) AddNode(p geometry.Point) int {
	i := len(g.Nodes)
	g.Nodes = append(g.Nodes, Node{Location: p, Parent: i})
	return i
}

// AddEdge connects two existing nodes and returns the edge index.
func (g *Graph) AddEdge(from, to int) int {
	i := len(g.Edges)
	g.Edges = append(g.Edges, Edge{
		From: from,
		To:   to,
		Cost: geometry.Distance(g.Nodes[from].Location, g.Nodes[to].Location),
	})
	g.Nodes[from].Edges = append(g.Nodes[from].Edges, i)
	g.Nodes[to].Edges = append(g.Nodes[to].Edges, i)
	return i
}

// Segment returns edge i as a geometric segment.
func (g *Graph) Segment(i int) geometry.Edge {
	e := g.Edges[i]
	return geometry.Edge{A: g.Nodes[e.From].Location, B: g.Nodes[e.To].Location, Cost: e.Cost}
}

// Build collects the distinct edges of triangles. Nodes and edges keep the
// order in which they are first seen.
func Build(triangles []geometry.Triangle) *Graph {
	g := New()
	nodes := make(map[geometry.Point]int)
	seen := make(map[geometry.EdgeKey]struct{})

	node := func(p geometry.Point) int {
		if i, ok := nodes[p]; ok {
			return i
		}
		i := g.AddNode(p)
		nodes[p] = i
		return i
	}

	for _, t := range triangles {
		for _, e := range t.Edges() {
			k := e.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			g.AddEdge(node(e.A), node(e.B))
		}
	}

	return g
}

// Reset puts every node back in its own set.
func (g *Graph) Reset() {
	for i := range g.Nodes {
		g.Nodes[i].Parent = i
		g.Nodes[i].Rank = 0
	}
}

// Find returns the representative of i's set, halving the path as it goes.
func (g *Graph) Find(i int) int {
	for g.Nodes[i].Parent != i {
		parent := g.Nodes[i].Parent
		g.Nodes[i].Parent = g.Nodes[parent].Parent
		i = parent
	}
	return i
}

// Union merges the sets of a and b by rank. It reports false when they were
// already joined.
func (g *Graph) Union(a, b int) bool {
	ra, rb := g.Find(a), g.Find(b)
	if ra == rb {
		return false
	}

	switch {
	case g.Nodes[ra].Rank < g.Nodes[rb].Rank:
		g.Nodes[ra].Parent = rb
	case g.Nodes[ra].Rank > g.Nodes[rb].Rank:
		g.Nodes[rb].Parent = ra
	default:
		g.Nodes[rb].Parent = ra
		g.Nodes[ra].Rank++
	}
	return true
}
