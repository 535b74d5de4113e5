// Package geom holds the value types shared by a sketch and its splitter:
// points, line segments, circles and arcs, all addressed by integer id
// rather than by direct ownership so that the data stays acyclic and
// serializable.
package geom

import "math"

// CoordEpsilon is the tolerance used to decide that two points coincide.
const CoordEpsilon = 1e-10

// InterceptEpsilon is the tolerance used when clamping a computed
// intersection parameter back onto a segment's span.
const InterceptEpsilon = 1e-12

// PointID identifies a Point within the Points map of the sketch that owns it.
type PointID int

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// AlmostEqual reports whether p and q differ by less than CoordEpsilon on
// both axes.
func (p Point) AlmostEqual(q Point) bool {
	return math.Abs(p.X-q.X) < CoordEpsilon && math.Abs(p.Y-q.Y) < CoordEpsilon
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Len returns the Euclidean length of p treated as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Len()
}

// Line is a directionless segment between two points of the owning sketch.
// start == end is illegal.
type Line struct {
	Start, End PointID
}

// SharesEndpoint reports whether a and b reference a common point id.
func (a Line) SharesEndpoint(b Line) (PointID, bool) {
	switch {
	case a.Start == b.Start || a.Start == b.End:
		return a.Start, true
	case a.End == b.Start || a.End == b.End:
		return a.End, true
	default:
		return 0, false
	}
}

// Circle is centered on Center with the given Radius. Top is a reference
// point on the circle, used to establish an angular origin once the circle
// is split into an arc.
type Circle struct {
	Center PointID
	Radius float64
	Top    PointID
}

// Arc runs from Start to End around Center. A degenerate arc has
// Start == End and represents a full circle that has been marked for
// splitting; it only arises transiently during circle-circle splitting.
type Arc struct {
	Center, Start, End PointID
	Clockwise          bool
}

// Degenerate reports whether the arc's endpoints coincide by id.
func (a Arc) Degenerate() bool {
	return a.Start == a.End
}

// SharesEndpoint reports whether a and b reference a common point id.
func (a Arc) SharesEndpoint(b Arc) (PointID, bool) {
	switch {
	case a.Start == b.Start || a.Start == b.End:
		return a.Start, true
	case a.End == b.Start || a.End == b.End:
		return a.End, true
	default:
		return 0, false
	}
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
