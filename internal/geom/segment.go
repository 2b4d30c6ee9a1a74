package geom

import "math"

// ClosestPointOnSegment projects p onto segment ab. The returned t is the
// parameter of the projection, clamped to [0,1].
func ClosestPointOnSegment(p, a, b Point) (float64, Point) {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 < eps {
		return 0, a
	}
	t := p.Sub(a).Dot(d) / l2
	t = math.Max(0, math.Min(1, t))
	return t, a.Lerp(b, t)
}

// DistanceToSegment is the distance from p to the closest point of ab.
func DistanceToSegment(p, a, b Point) float64 {
	_, q := ClosestPointOnSegment(p, a, b)
	return Distance(p, q)
}

// SegmentHit describes the closest segment of an outline to a point.
type SegmentHit struct {
	// Index is the index of the segment's first vertex; the new vertex goes
	// in at Index+1.
	Index int
	T     float64
	Point Point
	Dist  float64
}

// ClosestSegment finds the segment of pts nearest to p. Closed outlines
// include the segment from the last vertex back to the first.
func ClosestSegment(pts []Point, closed bool, p Point) (SegmentHit, bool) {
	n := len(pts)
	if n < 2 {
		return SegmentHit{}, false
	}
	segs := n - 1
	if closed && n > 2 {
		segs = n
	}
	best := SegmentHit{Dist: math.Inf(1)}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		t, q := ClosestPointOnSegment(p, a, b)
		if d := Distance(p, q); d < best.Dist {
			best = SegmentHit{Index: i, T: t, Point: q, Dist: d}
		}
	}
	return best, true
}
