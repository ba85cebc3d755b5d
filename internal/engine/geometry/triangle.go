package geometry

import (
	"math"

	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// Triangle stores its vertices counter-clockwise together with its
// circumcircle. RadiusSq is kept unrooted for exact containment tests.
type Triangle struct {
	Vertices     [3]Point
	Circumcenter Point
	Radius       float64
	RadiusSq     float64
}

// TriangleKey identifies a triangle by its sorted vertex set.
type TriangleKey [3]Point

// NewTriangle orders a, b, c counter-clockwise and computes the circumcircle.
// Collinear or coincident vertices return a degenerate triangle error.
func NewTriangle(a, b, c Point) (Triangle, error) {
	orient := Orientation(a, b, c)
	if orient == 0 {
		return Triangle{}, errors.DegenerateTrianglef("vertices (%g,%g) (%g,%g) (%g,%g) are collinear",
			a.X, a.Y, b.X, b.Y, c.X, c.Y)
	}
	if orient < 0 {
		b, c = c, b
	}

	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d == 0 {
		return Triangle{}, errors.DegenerateTrianglef("circumcircle undefined for (%g,%g) (%g,%g) (%g,%g)",
			a.X, a.Y, b.X, b.Y, c.X, c.Y)
	}

	aa := a.X*a.X + a.Y*a.Y
	bb := b.X*b.X + b.Y*b.Y
	cc := c.X*c.X + c.Y*c.Y
	center := Point{
		X: (aa*(b.Y-c.Y) + bb*(c.Y-a.Y) + cc*(a.Y-b.Y)) / d,
		Y: (aa*(c.X-b.X) + bb*(a.X-c.X) + cc*(b.X-a.X)) / d,
	}
	rSq := DistanceSq(a, center)

	return Triangle{
		Vertices:     [3]Point{a, b, c},
		Circumcenter: center,
		Radius:       math.Sqrt(rSq),
		RadiusSq:     rSq,
	}, nil
}

// Edges returns the three sides in vertex order.
func (t Triangle) Edges() [3]Edge {
	return [3]Edge{
		NewEdge(t.Vertices[0], t.Vertices[1]),
		NewEdge(t.Vertices[1], t.Vertices[2]),
		NewEdge(t.Vertices[2], t.Vertices[0]),
	}
}

// Key returns the canonical identity of t.
func (t Triangle) Key() TriangleKey {
	k := TriangleKey(t.Vertices)
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && Less(k[j], k[j-1]); j-- {
			k[j], k[j-1] = k[j-1], k[j]
		}
	}
	return k
}

// Equal reports whether t and o share the same vertex set.
func (t Triangle) Equal(o Triangle) bool {
	return t.Key() == o.Key()
}

// InCircumcircle reports whether p lies strictly inside the circumcircle.
func (t Triangle) InCircumcircle(p Point) bool {
	return DistanceSq(p, t.Circumcenter) < t.RadiusSq
}

// HasVertex reports whether p is one of the vertices.
func (t Triangle) HasVertex(p Point) bool {
	return t.Vertices[0] == p || t.Vertices[1] == p || t.Vertices[2] == p
}

// SharesVertex reports whether t and o have any vertex in common.
func (t Triangle) SharesVertex(o Triangle) bool {
	return t.HasVertex(o.Vertices[0]) || t.HasVertex(o.Vertices[1]) || t.HasVertex(o.Vertices[2])
}

// Contains reports whether p is strictly inside t.
func (t Triangle) Contains(p Point) bool {
	v := t.Vertices
	return Orientation(v[0], v[1], p) > 0 && Orientation(v[1], v[2], p) > 0 && Orientation(v[2], v[0], p) > 0
}
