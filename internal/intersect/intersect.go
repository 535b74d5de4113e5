// Package intersect implements pairwise geometric collision detection
// between lines, circles and arcs. Every function here is a pure function
// of the owning sketch's point map and the shapes involved; none of them
// mutate anything.
package intersect

import (
	"math"

	"github.com/sketchkit/core/internal/geom"
)

// Points resolves point ids to coordinates. A sketch's point map satisfies
// this directly.
type Points map[geom.PointID]geom.Point

func normalForm(start, end geom.Point) (a, b, c float64) {
	a = start.Y - end.Y
	b = end.X - start.X
	c = (start.X-end.X)*start.Y + (end.Y-start.Y)*start.X
	return
}

func withinRange(x, a, b, epsilon float64) bool {
	if a > b {
		a, b = b, a
	}
	return x >= a-epsilon && x <= b+epsilon
}

// LineLine returns the single collision point between two segments, if any.
// A point shared by both segments' endpoint ids is never reported even if
// it coincides with the computed intersection.
func LineLine(points Points, a, b geom.Line) []geom.Point {
	aStart, aEnd := points[a.Start], points[a.End]
	bStart, bEnd := points[b.Start], points[b.End]

	var forbidden []geom.Point
	if shared, ok := a.SharesEndpoint(b); ok {
		forbidden = append(forbidden, points[shared])
	}

	a1, b1, c1 := normalForm(aStart, aEnd)
	a2, b2, c2 := normalForm(bStart, bEnd)

	d := a1*b2 - a2*b1
	if d == 0 {
		return nil
	}

	xi := (b1*c2 - b2*c1) / d
	yi := (c1*a2 - c2*a1) / d
	if !geom.IsFinite(xi) || !geom.IsFinite(yi) {
		return nil
	}
	candidate := geom.Point{X: xi, Y: yi}

	for _, f := range forbidden {
		if f.AlmostEqual(candidate) {
			return nil
		}
	}

	if !withinRange(xi, aStart.X, aEnd.X, geom.InterceptEpsilon) ||
		!withinRange(yi, aStart.Y, aEnd.Y, geom.InterceptEpsilon) {
		return nil
	}
	if !withinRange(xi, bStart.X, bEnd.X, geom.InterceptEpsilon) ||
		!withinRange(yi, bStart.Y, bEnd.Y, geom.InterceptEpsilon) {
		return nil
	}

	return []geom.Point{candidate}
}

// CircleCircle returns zero, one (tangency) or two collision points between
// two circles.
func CircleCircle(points Points, a, b geom.Circle) []geom.Point {
	ca, cb := points[a.Center], points[b.Center]
	ra, rb := a.Radius, b.Radius

	dx, dy := cb.X-ca.X, cb.Y-ca.Y
	d := math.Hypot(dx, dy)

	if d > ra+rb {
		return nil
	}
	if d < math.Abs(ra-rb) {
		return nil
	}

	if math.Abs(d-(ra+rb)) < geom.CoordEpsilon {
		return []geom.Point{{
			X: ca.X + ra*dx/d,
			Y: ca.Y + ra*dy/d,
		}}
	}

	r2 := d * d
	r4 := r2 * r2
	k := (ra*ra - rb*rb) / (2 * r2)
	diffSq := ra*ra - rb*rb
	c := math.Sqrt(2*(ra*ra+rb*rb)/r2 - diffSq*diffSq/r4 - 1)

	fx := (ca.X+cb.X)/2 + k*(cb.X-ca.X)
	gx := c * (cb.Y - ca.Y) / 2
	fy := (ca.Y+cb.Y)/2 + k*(cb.Y-ca.Y)
	gy := c * (ca.X - cb.X) / 2

	return []geom.Point{
		{X: fx + gx, Y: fy + gy},
		{X: fx - gx, Y: fy - gy},
	}
}

func arcRadius(points Points, a geom.Arc) float64 {
	center, start := points[a.Center], points[a.Start]
	return center.Sub(start).Len()
}

func asFakeCircle(points Points, a geom.Arc) geom.Circle {
	return geom.Circle{Center: a.Center, Radius: arcRadius(points, a), Top: a.Start}
}

// PointWithinArc reports whether p lies on the arc's sweep (between start
// and end going counter-clockwise, after normalizing clockwise arcs) and at
// the arc's radius.
func PointWithinArc(points Points, a geom.Arc, p geom.Point) bool {
	center := points[a.Center]
	start, end := points[a.Start], points[a.End]
	if a.Clockwise {
		start, end = end, start
	}

	startAngle := math.Atan2(start.Y-center.Y, start.X-center.X)
	endAngle := math.Atan2(end.Y-center.Y, end.X-center.X)
	if endAngle <= startAngle {
		endAngle += 2 * math.Pi
	}

	pointAngle := math.Atan2(p.Y-center.Y, p.X-center.X)
	if pointAngle < startAngle {
		pointAngle += 2 * math.Pi
	}

	if pointAngle < startAngle || pointAngle > endAngle {
		return false
	}

	radius := center.Sub(start).Len()
	pointRadius := center.Sub(p).Len()
	return math.Abs(radius-pointRadius) < geom.CoordEpsilon
}

// CircleArc reduces the arc to the circle sharing its center and radius,
// runs CircleCircle, then keeps only the points that fall within the arc's
// sweep.
func CircleArc(points Points, c geom.Circle, a geom.Arc) []geom.Point {
	fake := asFakeCircle(points, a)
	var out []geom.Point
	for _, p := range CircleCircle(points, c, fake) {
		if PointWithinArc(points, a, p) {
			out = append(out, p)
		}
	}
	return out
}

// ArcArc reduces both arcs to their fake circles, runs CircleCircle, keeps
// only points within both arcs' sweeps, and excludes a point that
// coincides with an endpoint shared by id between the two arcs.
func ArcArc(points Points, a, b geom.Arc) []geom.Point {
	fakeA := asFakeCircle(points, a)
	fakeB := asFakeCircle(points, b)

	var forbidden []geom.Point
	if shared, ok := a.SharesEndpoint(b); ok {
		forbidden = append(forbidden, points[shared])
	}

	var out []geom.Point
candidates:
	for _, p := range CircleCircle(points, fakeA, fakeB) {
		if !PointWithinArc(points, a, p) || !PointWithinArc(points, b, p) {
			continue
		}
		for _, f := range forbidden {
			if f.AlmostEqual(p) {
				continue candidates
			}
		}
		out = append(out, p)
	}
	return out
}
