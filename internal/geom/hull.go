package geom

// rayTarget is the far end of the containment ray.
var rayTarget = Point{X: 0, Y: 99999}

// PointInConvexHull treats the four control points of c as a polygon and
// reports whether p lies inside it, by counting crossings of a ray from p
// towards a fixed far point. The control polygon contains the curve, so
// this is enough to pick which half of a bisected curve holds p.
func PointInConvexHull(c Cubic, p Point) bool {
	edges := [4][2]Point{
		{c.P0, c.P1},
		{c.P1, c.P2},
		{c.P2, c.P3},
		{c.P3, c.P0},
	}
	count := 0
	for _, e := range edges {
		if _, ok := LineIntersection(e[0], e[1], p, rayTarget); ok {
			count++
		}
	}
	return count%2 == 1
}
