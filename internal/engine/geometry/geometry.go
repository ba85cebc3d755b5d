// Package geometry holds the planar primitives shared by the layout stages.
package geometry

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in world units.
type Point = r2.Vec

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return r2.Norm(r2.Sub(p, q))
}

// DistanceSq returns the squared Euclidean distance between p and q.
func DistanceSq(p, q Point) float64 {
	return r2.Norm2(r2.Sub(p, q))
}

// Less orders points by X, then Y.
func Less(p, q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// Orientation returns twice the signed area of abc. Positive means
// counter-clockwise, zero means collinear.
func Orientation(a, b, c Point) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}
