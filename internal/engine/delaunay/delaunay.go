// Package delaunay triangulates room centers with the Bowyer-Watson algorithm.
package delaunay

import (
	"github.com/KirkDiggler/dungeon-api/internal/engine/geometry"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// Super-triangle sizing defaults
const (
	DefaultIncrement       = 5000.0
	DefaultMarginIncrement = 2500.0
	DefaultScale           = 100.0
)

// SuperConfig sizes the enclosing triangle from the number of points.
type SuperConfig struct {
	Increment       float64
	MarginIncrement float64
	Scale           float64
}

// DefaultSuperConfig returns the default super-triangle sizing
func DefaultSuperConfig() SuperConfig {
	return SuperConfig{
		Increment:       DefaultIncrement,
		MarginIncrement: DefaultMarginIncrement,
		Scale:           DefaultScale,
	}
}

// Extent returns the half-size of the super-triangle for n points.
func (c SuperConfig) Extent(n int) float64 {
	return (float64(n)*c.Increment + float64(n)*c.MarginIncrement) * c.Scale
}

// SuperTriangle returns the triangle (-e,-e), (e,0), (-e,e).
func SuperTriangle(extent float64) (geometry.Triangle, error) {
	if extent <= 0 {
		return geometry.Triangle{}, errors.InvalidParameterf("super-triangle extent must be positive, got %g", extent)
	}
	return geometry.NewTriangle(
		geometry.Point{X: -extent, Y: -extent},
		geometry.Point{X: extent, Y: 0},
		geometry.Point{X: -extent, Y: extent},
	)
}

// Result is a finished triangulation.
type Result struct {
	Triangles []geometry.Triangle
	// Degenerate counts candidate triangles skipped because their vertices
	// were collinear.
	Degenerate int
}

// Triangulate inserts points one at a time into super and returns the
// triangles that do not touch it. Every point must lie strictly inside super.
// Repeated points are inserted once.
func Triangulate(points []geometry.Point, super geometry.Triangle) (*Result, error) {
	for i, p := range points {
		if !super.Contains(p) {
			return nil, errors.InvalidParameterf("point %d (%g,%g) is outside the super-triangle", i, p.X, p.Y).
				WithMeta("point_index", i)
		}
	}

	res := &Result{}
	triangles := []geometry.Triangle{super}
	inserted := make(map[geometry.Point]struct{}, len(points))

	for _, p := range points {
		if _, ok := inserted[p]; ok {
			continue
		}
		inserted[p] = struct{}{}

		next, skipped, err := insert(triangles, p)
		if err != nil {
			return nil, err
		}
		triangles = next
		res.Degenerate += skipped
	}

	for _, t := range triangles {
		if !t.SharesVertex(super) {
			res.Triangles = append(res.Triangles, t)
		}
	}

	return res, nil
}

// insert retriangulates the cavity formed by the triangles whose
// circumcircle strictly contains p.
func insert(triangles []geometry.Triangle, p geometry.Point) ([]geometry.Triangle, int, error) {
	bad := make(map[geometry.TriangleKey]struct{})
	counts := make(map[geometry.EdgeKey]int)
	var edges []geometry.Edge

	for _, t := range triangles {
		if !t.InCircumcircle(p) {
			continue
		}
		bad[t.Key()] = struct{}{}
		for _, e := range t.Edges() {
			k := e.Key()
			if counts[k] == 0 {
				edges = append(edges, e)
			}
			counts[k]++
		}
	}

	kept := make([]geometry.Triangle, 0, len(triangles)+len(edges))
	for _, t := range triangles {
		if _, isBad := bad[t.Key()]; !isBad {
			kept = append(kept, t)
		}
	}

	skipped := 0
	for _, e := range edges {
		if counts[e.Key()] != 1 {
			continue
		}
		t, err := geometry.NewTriangle(e.A, e.B, p)
		if err != nil {
			if errors.IsDegenerateTriangle(err) {
				skipped++
				continue
			}
			return nil, 0, err
		}
		kept = append(kept, t)
	}

	return kept, skipped, nil
}
