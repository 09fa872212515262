package geom

// CubicPoint evaluates one axis of a cubic Bézier at u using the Bernstein
// form.
func CubicPoint(p0, p1, p2, p3, u float64) float64 {
	mt := 1 - u
	return mt*mt*mt*p0 + 3*mt*mt*u*p1 + 3*mt*u*u*p2 + u*u*u*p3
}

// Cubic is a cubic Bézier with start P0, controls P1 and P2, end P3.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// ControlPoints is the De Casteljau construction at one parameter:
// three first-level lerps, two second-level lerps and the point T0 on
// the curve.
type ControlPoints struct {
	R0, R1, R2 Point
	S0, S1     Point
	T0         Point
}

// ControlPoints runs De Casteljau at u.
func (c Cubic) ControlPoints(u float64) ControlPoints {
	r0 := c.P0.Lerp(c.P1, u)
	r1 := c.P1.Lerp(c.P2, u)
	r2 := c.P2.Lerp(c.P3, u)
	s0 := r0.Lerp(r1, u)
	s1 := r1.Lerp(r2, u)
	return ControlPoints{R0: r0, R1: r1, R2: r2, S0: s0, S1: s1, T0: s0.Lerp(s1, u)}
}

// Eval returns the point on the curve at u.
func (c Cubic) Eval(u float64) Point {
	return Point{
		X: CubicPoint(c.P0.X, c.P1.X, c.P2.X, c.P3.X, u),
		Y: CubicPoint(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y, u),
	}
}

// Subdivide splits the curve at u into (P0, R0, S0, T0) and
// (T0, S1, R2, P3).
func (c Cubic) Subdivide(u float64) (Cubic, Cubic) {
	cp := c.ControlPoints(u)
	return Cubic{P0: c.P0, P1: cp.R0, P2: cp.S0, P3: cp.T0},
		Cubic{P0: cp.T0, P1: cp.S1, P2: cp.R2, P3: c.P3}
}

// Samples returns n+1 points along the curve at u = k/n.
func (c Cubic) Samples(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n+1)
	for k := 0; k <= n; k++ {
		pts[k] = c.ControlPoints(float64(k) / float64(n)).T0
	}
	return pts
}

// Bounds returns the bounding box of the control polygon, which contains
// the curve.
func (c Cubic) Bounds() Rect {
	return BoundsOf(c.P0, c.P1, c.P2, c.P3)
}
