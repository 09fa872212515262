package engine

import (
	"math"

	"github.com/samuraislice/slicer/internal/geom"
	"github.com/samuraislice/slicer/internal/svgpath"
)

// SplitParameter estimates the u at which c passes through target.
//
// It bisects c maxDepth times. At each level the half whose control hull
// contains target is kept and u moves to that half's midpoint. There is
// no failure path: a target on a hull boundary still yields a u within
// the last interval visited.
func SplitParameter(c geom.Cubic, target geom.Point, maxDepth int) float64 {
	u := 0.5
	cur := c
	for depth := 0; depth < maxDepth; {
		left, right := cur.Subdivide(0.5)
		depth++
		step := math.Pow(0.5, float64(depth+1))
		if geom.PointInConvexHull(left, target) {
			u -= step
			cur = left
		} else {
			u += step
			cur = right
		}
	}
	return u
}

// SplitCurve replaces one CurveTo by two fresh CurveTo commands meeting
// at the point nearest target, found with SplitParameter and subdivided
// from the original control points.
//
// The second command starts at the new vertex and is flagged as an
// intersection point. The first keeps the original's flag, since it
// still starts where the original did.
func SplitCurve(cmd *svgpath.Command, target geom.Point, maxDepth int) (*svgpath.Command, *svgpath.Command) {
	c := cmd.Cubic()
	u := SplitParameter(c, target, maxDepth)
	a, b := c.Subdivide(u)

	first := svgpath.FromCubic(a)
	first.IntersectionPoint = cmd.IntersectionPoint
	second := svgpath.FromCubic(b)
	second.IntersectionPoint = true
	return first, second
}
