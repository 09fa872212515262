// Package geom holds the 2D primitives the slicing engine is built on:
// points, segments, cubic Bézier curves, affine matrices and the
// control-hull containment heuristic.
package geom

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate. A point with NaN components marks an
// absent coordinate slot (for example the control points of a MoveTo).
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// NaNPoint returns the absent-slot marker.
func NaNPoint() Point {
	return Point{X: math.NaN(), Y: math.NaN()}
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Neg returns -p.
func (p Point) Neg() Point { return Point{X: -p.X, Y: -p.Y} }

// Lerp interpolates between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsNaN reports whether either component is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// Near reports whether q lies within tol of p on both axes. This is the
// box test used to deduplicate intersection points.
func (p Point) Near(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
