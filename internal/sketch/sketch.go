// Package sketch holds the mutable sketch container: the owning map of
// points plus its lines, circles and arcs, and the add/split operations
// exposed to the rest of the module.
package sketch

import (
	"github.com/sketchkit/core/internal/corelog"
	"github.com/sketchkit/core/internal/geom"
	"github.com/sketchkit/core/internal/split"
)

// Sketch owns a point map and collections of the three curve primitives,
// plus a high-water mark used to allocate fresh point ids.
type Sketch struct {
	Points    map[geom.PointID]geom.Point
	Lines     []geom.Line
	Circles   []geom.Circle
	Arcs      []geom.Arc
	highWater geom.PointID
}

// New returns an empty Sketch.
func New() *Sketch {
	return &Sketch{Points: map[geom.PointID]geom.Point{}}
}

// AddPoint allocates a fresh id for p and stores it.
func (s *Sketch) AddPoint(p geom.Point) geom.PointID {
	s.highWater++
	s.Points[s.highWater] = p
	return s.highWater
}

// Point looks up a point by id.
func (s *Sketch) Point(id geom.PointID) (geom.Point, bool) {
	p, ok := s.Points[id]
	return p, ok
}

// HighWater returns the current high-water mark.
func (s *Sketch) HighWater() geom.PointID { return s.highWater }

// AddLine appends a line segment referencing two existing point ids.
// start == end is illegal per spec.md §3, but AddLine does not check it:
// supplying distinct ids is the caller's responsibility, matching the
// replay layer's own lack of validation.
func (s *Sketch) AddLine(l geom.Line) {
	s.Lines = append(s.Lines, l)
}

// AddCircle appends a circle.
func (s *Sketch) AddCircle(c geom.Circle) {
	s.Circles = append(s.Circles, c)
}

// AddArc appends an arc.
func (s *Sketch) AddArc(a geom.Arc) {
	s.Arcs = append(s.Arcs, a)
}

// AddRectangle is a convenience matching the AddSketchRectangle operation:
// it allocates four corner points and four connecting line segments.
func (s *Sketch) AddRectangle(x, y, width, height float64) {
	bl := s.AddPoint(geom.Point{X: x, Y: y})
	br := s.AddPoint(geom.Point{X: x + width, Y: y})
	tr := s.AddPoint(geom.Point{X: x + width, Y: y + height})
	tl := s.AddPoint(geom.Point{X: x, Y: y + height})
	s.AddLine(geom.Line{Start: bl, End: br})
	s.AddLine(geom.Line{Start: br, End: tr})
	s.AddLine(geom.Line{Start: tr, End: tl})
	s.AddLine(geom.Line{Start: tl, End: bl})
}

// AddCircleAt is a convenience matching the AddSketchCircle operation: it
// allocates a center point, a top reference point, and the circle.
func (s *Sketch) AddCircleAt(x, y, radius float64) {
	center := s.AddPoint(geom.Point{X: x, Y: y})
	top := s.AddPoint(geom.Point{X: x, Y: y + radius})
	s.AddCircle(geom.Circle{Center: center, Radius: radius, Top: top})
}

// SplitIntersections runs the intersection kernel and scheduler over the
// sketch's current geometry and returns a fresh, split Sketch. The
// receiver is left untouched.
func (s *Sketch) SplitIntersections(logger corelog.Logger) *Sketch {
	result := split.Split(split.Input{
		Points:    s.Points,
		HighWater: s.highWater,
		Lines:     s.Lines,
		Circles:   s.Circles,
		Arcs:      s.Arcs,
	}, logger)

	return &Sketch{
		Points:    result.Points,
		Lines:     result.Lines,
		Circles:   result.Circles,
		Arcs:      result.Arcs,
		highWater: result.HighWater,
	}
}

// Clone returns a deep copy of the sketch.
func (s *Sketch) Clone() *Sketch {
	points := make(map[geom.PointID]geom.Point, len(s.Points))
	for k, v := range s.Points {
		points[k] = v
	}
	return &Sketch{
		Points:    points,
		Lines:     append([]geom.Line(nil), s.Lines...),
		Circles:   append([]geom.Circle(nil), s.Circles...),
		Arcs:      append([]geom.Arc(nil), s.Arcs...),
		highWater: s.highWater,
	}
}
