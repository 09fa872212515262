package svgpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samuraislice/slicer/internal/geom"
)

var (
	ErrEmptyPath         = errors.New("empty path")
	ErrMissingMoveTo     = errors.New("path does not start with a moveto")
	ErrMissingClosePath  = errors.New("path does not end with a closepath")
	ErrUnexpectedCommand = errors.New("unexpected command inside contour")
	ErrNotClosed         = errors.New("closepath does not return to the moveto point")
)

const closeEps = 1e-9

// Path owns an ordered command list. Commands are addressed by id so
// lookups stay valid across Replace.
type Path struct {
	cmds []*Command
}

// New wraps cmds without copying them.
func New(cmds ...*Command) *Path {
	return &Path{cmds: cmds}
}

// Commands returns the live command slice. Callers may mutate the
// commands but must not append to or reslice it.
func (p *Path) Commands() []*Command {
	return p.cmds
}

func (p *Path) Len() int { return len(p.cmds) }

// At returns the command at index i.
func (p *Path) At(i int) *Command { return p.cmds[i] }

// IndexOf returns the index of the command with id, or -1.
func (p *Path) IndexOf(id string) int {
	for i, c := range p.cmds {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the command with id.
func (p *Path) Find(id string) (*Command, bool) {
	i := p.IndexOf(id)
	if i < 0 {
		return nil, false
	}
	return p.cmds[i], true
}

// Replace splices repl in place of the command with id. It reports false
// when no such command exists.
func (p *Path) Replace(id string, repl ...*Command) bool {
	i := p.IndexOf(id)
	if i < 0 {
		return false
	}
	out := make([]*Command, 0, len(p.cmds)-1+len(repl))
	out = append(out, p.cmds[:i]...)
	out = append(out, repl...)
	out = append(out, p.cmds[i+1:]...)
	p.cmds = out
	return true
}

// Curves returns the CurveTo commands in order.
func (p *Path) Curves() []*Command {
	var out []*Command
	for _, c := range p.cmds {
		if c.Kind == CurveTo {
			out = append(out, c)
		}
	}
	return out
}

// Clone deep-copies the path. Ids are kept.
func (p *Path) Clone() *Path {
	out := make([]*Command, len(p.cmds))
	for i, c := range p.cmds {
		out[i] = c.Clone()
	}
	return &Path{cmds: out}
}

// Bounds returns the bounding box of every coordinate in the path.
func (p *Path) Bounds() geom.Rect {
	pts := make([]geom.Point, 0, len(p.cmds)*4)
	for _, c := range p.cmds {
		pts = append(pts, c.Start, c.Ctrl1, c.Ctrl2, c.End)
	}
	return geom.BoundsOf(pts...)
}

// Validate checks the closed single-contour shape: one MoveTo, only
// CurveTo commands, then one ClosePath ending at the MoveTo point.
func (p *Path) Validate() error {
	n := len(p.cmds)
	if n == 0 {
		return ErrEmptyPath
	}
	if p.cmds[0].Kind != MoveTo {
		return ErrMissingMoveTo
	}
	if n < 2 || p.cmds[n-1].Kind != ClosePath {
		return ErrMissingClosePath
	}
	for i := 1; i < n-1; i++ {
		if p.cmds[i].Kind != CurveTo {
			return fmt.Errorf("command %d is %s: %w", i, p.cmds[i].Kind, ErrUnexpectedCommand)
		}
	}
	if p.cmds[0].End.Dist(p.cmds[n-1].End) > closeEps {
		return ErrNotClosed
	}
	return nil
}

// String serialises the path as absolute M/C/Z data, e.g.
// "M1,0.3C3.2,5.6 17.3,3.6 18.4,0.2Z".
func (p *Path) String() string {
	var b strings.Builder
	for _, c := range p.cmds {
		switch c.Kind {
		case MoveTo:
			b.WriteString("M")
			writePair(&b, c.End)
		case CurveTo:
			b.WriteString("C")
			writePair(&b, c.Ctrl1)
			b.WriteByte(' ')
			writePair(&b, c.Ctrl2)
			b.WriteByte(' ')
			writePair(&b, c.End)
		case ClosePath:
			b.WriteString("Z")
		}
	}
	return b.String()
}

func writePair(b *strings.Builder, p geom.Point) {
	b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
}
