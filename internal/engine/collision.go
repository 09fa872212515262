package engine

import (
	"github.com/samuraislice/slicer/internal/geom"
	"github.com/samuraislice/slicer/internal/svgpath"
)

// Intersection records where a swipe crossed a shape: the id of the
// CurveTo that was hit and a point on that curve.
type Intersection struct {
	OwnerID  string
	Point    geom.Point
	PlayerID string
}

// DetectOptions controls Detect.
type DetectOptions struct {
	// Samples is the number of straight pieces each curve is cut into.
	Samples int
	// Tolerance is the dedup box in pixels.
	Tolerance float64
	// PlayerID is stamped on every result.
	PlayerID string
}

// Detect finds where segments cross the curves of path.
//
// Each CurveTo is sampled into straight pieces and every piece is tested
// against every segment, in the order curves, samples, segments, so the
// first result is well defined. Hits within Tolerance of a point in known
// or of an earlier hit are dropped. path is not modified.
func Detect(path *svgpath.Path, segments []Segment, known []Intersection, opts DetectOptions) []Intersection {
	if len(segments) == 0 {
		return nil
	}
	n := opts.Samples
	if n < 1 {
		n = 20
	}

	var found []Intersection
	for _, cmd := range path.Commands() {
		if cmd.Kind != svgpath.CurveTo {
			continue
		}
		samples := cmd.Cubic().Samples(n)
		for k := 0; k < n; k++ {
			p1, p2 := samples[k], samples[k+1]
			for _, seg := range segments {
				hit, ok := geom.LineIntersection(seg.A, seg.B, p1, p2)
				if !ok {
					continue
				}
				if containsPoint(known, hit, opts.Tolerance) || containsPoint(found, hit, opts.Tolerance) {
					continue
				}
				found = append(found, Intersection{OwnerID: cmd.ID, Point: hit, PlayerID: opts.PlayerID})
			}
		}
	}
	return found
}

func containsPoint(points []Intersection, p geom.Point, tol float64) bool {
	for _, existing := range points {
		if existing.Point.Near(p, tol) {
			return true
		}
	}
	return false
}
