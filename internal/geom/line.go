package geom

import "math"

// LineIntersection tests segment p1-p2 against segment p3-p4.
//
// When they cross it returns p3, not the exact crossing. Callers pass a
// short curve sample as p3-p4, so p3 is a point on the curve within one
// sample of the crossing, which is what the curve splitter needs.
// Parallel segments, parameters outside [0, 1] and NaN results report
// false.
func LineIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	d := (p2.X-p1.X)*(p4.Y-p3.Y) - (p2.Y-p1.Y)*(p4.X-p3.X)
	if d == 0 {
		return Point{}, false
	}
	u := ((p3.X-p1.X)*(p4.Y-p3.Y) - (p3.Y-p1.Y)*(p4.X-p3.X)) / d
	v := ((p3.X-p1.X)*(p2.Y-p1.Y) - (p3.Y-p1.Y)*(p2.X-p1.X)) / d
	if u < 0 || u > 1 {
		return Point{}, false
	}
	if v < 0 || v > 1 {
		return Point{}, false
	}
	ix := p1.X + u*(p2.X-p1.X)
	iy := p1.Y + u*(p2.Y-p1.Y)
	if math.IsNaN(ix) || math.IsNaN(iy) {
		return Point{}, false
	}
	return p3, true
}
