package geometry

// Edge is an undirected segment weighted by its length.
type Edge struct {
	A    Point
	B    Point
	Cost float64
}

// EdgeKey identifies an edge regardless of endpoint order.
type EdgeKey struct {
	Lo Point
	Hi Point
}

// NewEdge creates an edge with its Euclidean cost.
func NewEdge(a, b Point) Edge {
	return Edge{A: a, B: b, Cost: Distance(a, b)}
}

// Key returns the canonical key with endpoints sorted.
func (e Edge) Key() EdgeKey {
	if Less(e.B, e.A) {
		return EdgeKey{Lo: e.B, Hi: e.A}
	}
	return EdgeKey{Lo: e.A, Hi: e.B}
}

// Equal reports whether e and o connect the same two points.
func (e Edge) Equal(o Edge) bool {
	return e.Key() == o.Key()
}
