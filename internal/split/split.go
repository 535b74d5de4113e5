// Package split implements the iterative worklist that subdivides a
// sketch's lines, circles and arcs at their mutual intersections until no
// interior point is shared between any two shapes.
//
// The scheduler is grounded directly on split_intersections /
// step_process from the original sketch engine: a FIFO of pairs still to
// be checked, a FIFO of collisions still to be materialized, and two sets
// used to requeue pairs after a substitution or a replacement.
package split

import (
	"sort"

	"github.com/sketchkit/core/internal/corelog"
	"github.com/sketchkit/core/internal/geom"
	"github.com/sketchkit/core/internal/incrmap"
	"github.com/sketchkit/core/internal/intersect"
)

// Kind tags which field of a Shape is meaningful.
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindArc
)

// Shape is the splitter's tagged union of the three curve primitives.
type Shape struct {
	Kind   Kind
	Line   geom.Line
	Circle geom.Circle
	Arc    geom.Arc
}

// Input is the geometry handed to the scheduler: the owning sketch's
// points, its high-water id, and its lines/circles/arcs in whatever order
// the caller wants pair (a, b), a < b, evaluated in.
type Input struct {
	Points    map[geom.PointID]geom.Point
	HighWater geom.PointID
	Lines     []geom.Line
	Circles   []geom.Circle
	Arcs      []geom.Arc
}

// Result is a fresh, split sketch's geometry.
type Result struct {
	Points    map[geom.PointID]geom.Point
	HighWater geom.PointID
	Lines     []geom.Line
	Circles   []geom.Circle
	Arcs      []geom.Arc
}

type collision struct {
	point geom.Point
	a, b  incrmap.Key
}

type scheduler struct {
	points    map[geom.PointID]geom.Point
	highWater geom.PointID
	pool      *incrmap.Map[Shape]

	pairsToCheck            [][2]incrmap.Key
	collisions              []collision
	possibleShapeCollisions map[incrmap.Key]struct{}
	newShapes               map[incrmap.Key]struct{}
	recentlyDeleted         map[incrmap.Key]struct{}

	iterations int
}

// Split subdivides every line, circle and arc in in at their mutual
// intersections. logger may be nil; when present, the total number of
// scheduler iterations is reported at Info level once splitting settles.
func Split(in Input, logger corelog.Logger) Result {
	s := &scheduler{
		points:                  copyPoints(in.Points),
		highWater:               in.HighWater,
		pool:                    incrmap.New[Shape](),
		possibleShapeCollisions: map[incrmap.Key]struct{}{},
		newShapes:               map[incrmap.Key]struct{}{},
		recentlyDeleted:         map[incrmap.Key]struct{}{},
	}

	for _, l := range in.Lines {
		s.pool.Add(Shape{Kind: KindLine, Line: l})
	}
	for _, c := range in.Circles {
		s.pool.Add(Shape{Kind: KindCircle, Circle: c})
	}
	for _, a := range in.Arcs {
		s.pool.Add(Shape{Kind: KindArc, Arc: a})
	}

	keys := s.pool.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for i, a := range keys {
		for _, b := range keys[i+1:] {
			s.pairsToCheck = append(s.pairsToCheck, [2]incrmap.Key{a, b})
		}
	}

	for s.step() {
		s.iterations++
	}

	if logger != nil {
		logger.Infof("split_intersections settled after %d iterations, %d shapes remain",
			s.iterations, s.pool.Len())
	}

	return s.emit()
}

func copyPoints(in map[geom.PointID]geom.Point) map[geom.PointID]geom.Point {
	out := make(map[geom.PointID]geom.Point, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// step applies exactly one scheduler action and reports whether any work
// was done.
func (s *scheduler) step() bool {
	if len(s.recentlyDeleted) > 0 {
		s.cleanupDeletions()
		return true
	}

	if len(s.possibleShapeCollisions) > 0 || len(s.newShapes) > 0 {
		s.scheduleRechecks()
		return true
	}

	if len(s.collisions) > 0 {
		c := s.collisions[0]
		s.collisions = s.collisions[1:]
		s.materialize(c)
		return true
	}

	if len(s.pairsToCheck) > 0 {
		pair := s.pairsToCheck[0]
		s.pairsToCheck = s.pairsToCheck[1:]
		s.detect(pair[0], pair[1])
		return true
	}

	return false
}

func (s *scheduler) cleanupDeletions() {
	survivingCollisions := s.collisions[:0]
	for _, c := range s.collisions {
		_, aDeleted := s.recentlyDeleted[c.a]
		_, bDeleted := s.recentlyDeleted[c.b]
		if !aDeleted && !bDeleted {
			survivingCollisions = append(survivingCollisions, c)
			continue
		}
		if aDeleted && !bDeleted {
			s.possibleShapeCollisions[c.b] = struct{}{}
		}
		if bDeleted && !aDeleted {
			s.possibleShapeCollisions[c.a] = struct{}{}
		}
	}
	s.collisions = survivingCollisions

	survivingPairs := s.pairsToCheck[:0]
	for _, p := range s.pairsToCheck {
		_, aDeleted := s.recentlyDeleted[p[0]]
		_, bDeleted := s.recentlyDeleted[p[1]]
		switch {
		case !aDeleted && !bDeleted:
			survivingPairs = append(survivingPairs, p)
		case aDeleted && !bDeleted:
			s.possibleShapeCollisions[p[1]] = struct{}{}
		case bDeleted && !aDeleted:
			s.possibleShapeCollisions[p[0]] = struct{}{}
		}
	}
	s.pairsToCheck = survivingPairs

	s.recentlyDeleted = map[incrmap.Key]struct{}{}
}

func (s *scheduler) scheduleRechecks() {
	possibles := sortedKeys(s.possibleShapeCollisions)
	news := sortedKeys(s.newShapes)

	var fresh [][2]incrmap.Key
	for _, p := range possibles {
		for _, n := range news {
			fresh = append(fresh, [2]incrmap.Key{p, n})
		}
	}
	s.pairsToCheck = append(fresh, s.pairsToCheck...)

	s.possibleShapeCollisions = map[incrmap.Key]struct{}{}
	s.newShapes = map[incrmap.Key]struct{}{}
}

func sortedKeys(m map[incrmap.Key]struct{}) []incrmap.Key {
	keys := make([]incrmap.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s *scheduler) detect(keyA, keyB incrmap.Key) {
	shapeA, ok := s.pool.Get(keyA)
	if !ok {
		return
	}
	shapeB, ok := s.pool.Get(keyB)
	if !ok {
		return
	}

	var points []geom.Point
	switch {
	case shapeA.Kind == KindLine && shapeB.Kind == KindLine:
		points = intersect.LineLine(s.points, shapeA.Line, shapeB.Line)
	case shapeA.Kind == KindCircle && shapeB.Kind == KindCircle:
		points = intersect.CircleCircle(s.points, shapeA.Circle, shapeB.Circle)
	case shapeA.Kind == KindCircle && shapeB.Kind == KindArc:
		points = intersect.CircleArc(s.points, shapeA.Circle, shapeB.Arc)
	case shapeA.Kind == KindArc && shapeB.Kind == KindCircle:
		points = intersect.CircleArc(s.points, shapeB.Circle, shapeA.Arc)
	case shapeA.Kind == KindArc && shapeB.Kind == KindArc:
		points = intersect.ArcArc(s.points, shapeA.Arc, shapeB.Arc)
	default:
		// line-circle and line-arc collisions are unimplemented (spec.md
		// §9 open question 1); the pair is simply never flagged.
		return
	}

	for _, p := range points {
		s.collisions = append(s.collisions, collision{point: p, a: keyA, b: keyB})
	}
}

func (s *scheduler) addPoint(p geom.Point) geom.PointID {
	s.highWater++
	s.points[s.highWater] = p
	return s.highWater
}

func (s *scheduler) materialize(c collision) {
	shapeA, okA := s.pool.Get(c.a)
	shapeB, okB := s.pool.Get(c.b)
	if !okA || !okB {
		// one side was already retired by an earlier collision this round
		return
	}

	newPoint := s.addPoint(c.point)

	switch {
	case shapeA.Kind == KindLine && shapeB.Kind == KindLine:
		s.splitLineLine(c.a, shapeA.Line, c.b, shapeB.Line, newPoint)
	case shapeA.Kind == KindArc && shapeB.Kind == KindArc:
		s.splitArcArc(c.a, shapeA.Arc, c.b, shapeB.Arc, newPoint)
	case shapeA.Kind == KindCircle && shapeB.Kind == KindCircle:
		s.splitCircleCircle(c.a, shapeA.Circle, c.b, shapeB.Circle, newPoint)
	case shapeA.Kind == KindCircle && shapeB.Kind == KindArc:
		s.splitCircleArc(c.a, shapeA.Circle, c.b, shapeB.Arc, newPoint)
	case shapeA.Kind == KindArc && shapeB.Kind == KindCircle:
		s.splitCircleArc(c.b, shapeB.Circle, c.a, shapeA.Arc, newPoint)
	}
}

func (s *scheduler) splitLineLine(keyA incrmap.Key, a geom.Line, keyB incrmap.Key, b geom.Line, p geom.PointID) {
	child := func(l geom.Line) {
		k := s.pool.Add(Shape{Kind: KindLine, Line: l})
		s.newShapes[k] = struct{}{}
	}
	child(geom.Line{Start: a.Start, End: p})
	child(geom.Line{Start: p, End: a.End})
	child(geom.Line{Start: b.Start, End: p})
	child(geom.Line{Start: p, End: b.End})

	s.pool.Remove(keyA)
	s.pool.Remove(keyB)
	s.recentlyDeleted[keyA] = struct{}{}
	s.recentlyDeleted[keyB] = struct{}{}
}

func (s *scheduler) splitArcArc(keyA incrmap.Key, a geom.Arc, keyB incrmap.Key, b geom.Arc, p geom.PointID) {
	child := func(arc geom.Arc) {
		k := s.pool.Add(Shape{Kind: KindArc, Arc: arc})
		s.newShapes[k] = struct{}{}
	}
	child(geom.Arc{Center: a.Center, Start: a.Start, End: p, Clockwise: a.Clockwise})
	child(geom.Arc{Center: a.Center, Start: p, End: a.End, Clockwise: a.Clockwise})
	child(geom.Arc{Center: b.Center, Start: b.Start, End: p, Clockwise: b.Clockwise})
	child(geom.Arc{Center: b.Center, Start: p, End: b.End, Clockwise: b.Clockwise})

	s.pool.Remove(keyA)
	s.pool.Remove(keyB)
	s.recentlyDeleted[keyA] = struct{}{}
	s.recentlyDeleted[keyB] = struct{}{}
}

// splitCircleCircle substitutes each circle in place with a degenerate arc
// sharing the new point as both endpoints. Identity survives the type
// change: both keys are preserved.
func (s *scheduler) splitCircleCircle(keyA incrmap.Key, a geom.Circle, keyB incrmap.Key, b geom.Circle, p geom.PointID) {
	s.pool.Set(keyA, Shape{Kind: KindArc, Arc: geom.Arc{Center: a.Center, Start: p, End: p}})
	s.pool.Set(keyB, Shape{Kind: KindArc, Arc: geom.Arc{Center: b.Center, Start: p, End: p}})
}

// splitCircleArc substitutes the circle in place (key preserved) and
// replaces the arc with two child arcs (key retired, two new keys added).
func (s *scheduler) splitCircleArc(circleKey incrmap.Key, circle geom.Circle, arcKey incrmap.Key, arc geom.Arc, p geom.PointID) {
	s.pool.Set(circleKey, Shape{Kind: KindArc, Arc: geom.Arc{Center: circle.Center, Start: p, End: p}})

	child := func(a geom.Arc) {
		k := s.pool.Add(Shape{Kind: KindArc, Arc: a})
		s.newShapes[k] = struct{}{}
	}
	child(geom.Arc{Center: arc.Center, Start: arc.Start, End: p, Clockwise: arc.Clockwise})
	child(geom.Arc{Center: arc.Center, Start: p, End: arc.End, Clockwise: arc.Clockwise})

	s.pool.Remove(arcKey)
	s.recentlyDeleted[arcKey] = struct{}{}
}

func (s *scheduler) emit() Result {
	result := Result{
		Points:    s.points,
		HighWater: s.highWater,
	}
	keys := s.pool.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		shape, _ := s.pool.Get(k)
		switch shape.Kind {
		case KindLine:
			result.Lines = append(result.Lines, shape.Line)
		case KindCircle:
			result.Circles = append(result.Circles, shape.Circle)
		case KindArc:
			result.Arcs = append(result.Arcs, shape.Arc)
		}
	}
	return result
}
