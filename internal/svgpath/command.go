// Package svgpath models a closed shape as an ordered list of absolute
// move/curve/close commands, parses the M/C/Z subset of SVG path data
// into that model and serialises it back.
package svgpath

import (
	"github.com/samuraislice/slicer/internal/geom"
	"github.com/samuraislice/slicer/internal/typeid"
)

// Kind discriminates path commands.
type Kind int

const (
	MoveTo Kind = iota + 1
	CurveTo
	ClosePath
)

// Code returns the SVG command letter.
func (k Kind) Code() string {
	switch k {
	case MoveTo:
		return "M"
	case CurveTo:
		return "C"
	case ClosePath:
		return "Z"
	default:
		return "?"
	}
}

func (k Kind) String() string {
	switch k {
	case MoveTo:
		return "moveto"
	case CurveTo:
		return "curveto"
	case ClosePath:
		return "closepath"
	default:
		return "unknown"
	}
}

// Command is one path entry with absolute coordinates.
//
// Only CurveTo carries Start, Ctrl1 and Ctrl2; on MoveTo and ClosePath
// those slots hold NaN and transforms leave them alone. Start is always
// the previous command's End.
//
// ID is minted once and survives mutation of the surrounding list, so a
// command can be found again after splices have shifted indices.
type Command struct {
	ID    string
	Kind  Kind
	Start geom.Point
	Ctrl1 geom.Point
	Ctrl2 geom.Point
	End   geom.Point

	// IntersectionPoint marks a curve whose Start is a cut vertex
	// inserted by the curve splitter.
	IntersectionPoint bool
}

// NewMoveTo returns a MoveTo to p with a fresh id.
func NewMoveTo(p geom.Point) *Command {
	return &Command{
		ID:    typeid.NewCommandID(),
		Kind:  MoveTo,
		Start: geom.NaNPoint(),
		Ctrl1: geom.NaNPoint(),
		Ctrl2: geom.NaNPoint(),
		End:   p,
	}
}

// NewCurveTo returns a cubic from start to end with a fresh id.
func NewCurveTo(start, c1, c2, end geom.Point) *Command {
	return &Command{
		ID:    typeid.NewCommandID(),
		Kind:  CurveTo,
		Start: start,
		Ctrl1: c1,
		Ctrl2: c2,
		End:   end,
	}
}

// NewClosePath returns a ClosePath back to p with a fresh id.
func NewClosePath(p geom.Point) *Command {
	return &Command{
		ID:    typeid.NewCommandID(),
		Kind:  ClosePath,
		Start: geom.NaNPoint(),
		Ctrl1: geom.NaNPoint(),
		Ctrl2: geom.NaNPoint(),
		End:   p,
	}
}

// FromCubic builds a CurveTo covering c.
func FromCubic(c geom.Cubic) *Command {
	return NewCurveTo(c.P0, c.P1, c.P2, c.P3)
}

// Cubic returns the curve's four control points. Only meaningful for
// CurveTo.
func (c *Command) Cubic() geom.Cubic {
	return geom.Cubic{P0: c.Start, P1: c.Ctrl1, P2: c.Ctrl2, P3: c.End}
}

// Clone copies the command, keeping its id.
func (c *Command) Clone() *Command {
	cp := *c
	return &cp
}

// slots returns pointers to every coordinate pair for in-place transforms.
func (c *Command) slots() [4]*geom.Point {
	return [4]*geom.Point{&c.Start, &c.Ctrl1, &c.Ctrl2, &c.End}
}
