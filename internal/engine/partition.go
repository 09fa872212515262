package engine

import (
	"errors"
	"fmt"

	"github.com/samuraislice/slicer/internal/svgpath"
)

var (
	ErrCutIncomplete = errors.New("path has fewer than two cut vertices")
	ErrAmbiguousCut  = errors.New("path has more than two cut vertices")
	ErrDegenerateCut = errors.New("cut vertices coincide")
)

const degenerateEps = 1e-6

// Partition splits a path whose two cut vertices have been inserted by
// SplitCurve into two closed contours.
//
// The first piece starts at the first flagged curve and the second at the
// last. Each walks forward, wrapping past the end of the list and
// skipping MoveTo and ClosePath, until the other flagged curve, then
// closes back to its start with a straight edge. Every curve of p lands
// in exactly one piece. The pieces carry copies of the commands (ids
// kept, flags cleared) and p is left untouched.
func Partition(p *svgpath.Path) (*svgpath.Path, *svgpath.Path, error) {
	cmds := p.Commands()
	first, last, count := -1, -1, 0
	for i, c := range cmds {
		if c.Kind != svgpath.CurveTo || !c.IntersectionPoint {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
		count++
	}

	switch {
	case count < 2:
		return nil, nil, fmt.Errorf("partition: %d cut vertices: %w", count, ErrCutIncomplete)
	case count > 2:
		return nil, nil, fmt.Errorf("partition: %d cut vertices: %w", count, ErrAmbiguousCut)
	}
	if cmds[first].Start.Dist(cmds[last].Start) <= degenerateEps {
		return nil, nil, ErrDegenerateCut
	}

	return walkPiece(cmds, first), walkPiece(cmds, last), nil
}

func walkPiece(cmds []*svgpath.Command, from int) *svgpath.Path {
	origin := cmds[from].Start
	out := []*svgpath.Command{svgpath.NewMoveTo(origin), pieceCopy(cmds[from])}

	n := len(cmds)
	for i := (from + 1) % n; i != from; i = (i + 1) % n {
		c := cmds[i]
		if c.Kind != svgpath.CurveTo {
			continue
		}
		if c.IntersectionPoint {
			break
		}
		out = append(out, pieceCopy(c))
	}

	out = append(out, svgpath.NewClosePath(origin))
	return svgpath.New(out...)
}

func pieceCopy(c *svgpath.Command) *svgpath.Command {
	cp := c.Clone()
	cp.IntersectionPoint = false
	return cp
}
