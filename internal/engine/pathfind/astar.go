// Package pathfind routes corridors between rooms over grid connections.
package pathfind

import (
	"math"
	"slices"

	"github.com/zyedidia/generic/heap"

	"github.com/KirkDiggler/dungeon-api/internal/engine/grid"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// Path is a sequence of adjacent cell indices from start to goal inclusive.
type Path struct {
	Cells []int
	Cost  float64
}

type nodeState uint8

const (
	unvisited nodeState = iota
	open
	closed
)

type openEntry struct {
	cell int
	g    float64
	f    float64
	seq  uint64
}

// search holds per-cell bookkeeping for one FindPath call.
type search struct {
	grid   *grid.Grid
	goal   *grid.Cell
	state  []nodeState
	g      []float64
	parent []int
	open   *heap.Heap[openEntry]
	seq    uint64
}

// FindPath runs A* from cell from to cell to. Ties on estimated cost go to
// the entry pushed first. A cell is closed before its neighbours are relaxed,
// and a closed cell is reopened if a cheaper route reaches it.
func FindPath(g *grid.Grid, from, to int) (*Path, error) {
	start, goal := g.CellAt(from), g.CellAt(to)
	if start == nil || goal == nil {
		return nil, errors.InvalidArgumentf("cells %d and %d must be within [0, %d)", from, to, g.Size())
	}

	s := &search{
		grid:   g,
		goal:   goal,
		state:  make([]nodeState, g.Size()),
		g:      make([]float64, g.Size()),
		parent: make([]int, g.Size()),
		open: heap.New(func(a, b openEntry) bool {
			if a.f != b.f {
				return a.f < b.f
			}
			return a.seq < b.seq
		}),
	}
	for i := range s.parent {
		s.parent[i] = -1
	}

	s.push(from, 0)

	for s.open.Size() > 0 {
		cur, _ := s.open.Pop()
		if s.state[cur.cell] != open || cur.g > s.g[cur.cell] {
			continue
		}
		if cur.cell == to {
			return s.path(to), nil
		}

		s.state[cur.cell] = closed

		for _, conn := range g.CellAt(cur.cell).Connections {
			cost := cur.g + conn.Cost
			if s.state[conn.To] != unvisited && cost >= s.g[conn.To] {
				continue
			}
			s.parent[conn.To] = cur.cell
			s.push(conn.To, cost)
		}
	}

	return nil, errors.PathNotFoundf("no path from cell %d to cell %d", from, to).
		WithMeta("from", from).
		WithMeta("to", to)
}

func (s *search) push(cell int, cost float64) {
	s.state[cell] = open
	s.g[cell] = cost
	s.open.Push(openEntry{
		cell: cell,
		g:    cost,
		f:    cost + s.heuristic(cell),
		seq:  s.seq,
	})
	s.seq++
}

// heuristic is the straight-line distance in cell steps. With unit step
// costs it never overestimates.
func (s *search) heuristic(cell int) float64 {
	c := s.grid.CellAt(cell)
	return math.Hypot(float64(c.Col-s.goal.Col), float64(c.Row-s.goal.Row))
}

func (s *search) path(to int) *Path {
	p := &Path{Cost: s.g[to]}
	for c := to; c != -1; c = s.parent[c] {
		p.Cells = append(p.Cells, c)
	}
	slices.Reverse(p.Cells)
	return p
}
