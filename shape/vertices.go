package shape

import "log"

const (
	MinVertices = 3
	MaxVertices = 8
)

// Vertex is a point in design units.
type Vertex struct {
	X, Y float64
}

// SubPolygon is one convex piece, counter-clockwise.
type SubPolygon []Vertex

// VertexSet holds every convex piece of a possibly concave polygon.
type VertexSet []SubPolygon

// DefaultVertexSet is a 20x20 box centered on the origin.
//
//	p1----p2
//	|      |
//	p4----p3
func DefaultVertexSet() VertexSet {
	return VertexSet{{
		{X: -10, Y: -10},
		{X: 10, Y: -10},
		{X: 10, Y: 10},
		{X: -10, Y: 10},
	}}
}

// NewVertexSet converts nested coordinate arrays into a VertexSet. Missing
// data falls back to DefaultVertexSet and logs one line. Vertex counts are
// checked later by Build.
func NewVertexSet(vertices [][][2]float64, logger *log.Logger) VertexSet {
	if len(vertices) == 0 {
		if logger == nil {
			logger = log.Default()
		}
		logger.Println("shape: no vertices set, default is used")
		return DefaultVertexSet()
	}

	vs := make(VertexSet, len(vertices))
	for i, poly := range vertices {
		sp := make(SubPolygon, len(poly))
		for j, v := range poly {
			sp[j] = Vertex{X: v[0], Y: v[1]}
		}
		vs[i] = sp
	}
	return vs
}

// Clone returns a deep copy.
func (vs VertexSet) Clone() VertexSet {
	if vs == nil {
		return nil
	}
	out := make(VertexSet, len(vs))
	for i, sp := range vs {
		out[i] = append(SubPolygon(nil), sp...)
	}
	return out
}
