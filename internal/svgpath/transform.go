package svgpath

import "github.com/samuraislice/slicer/internal/geom"

// Transform applies m to every coordinate slot of cmds in place. NaN
// slots are skipped.
func Transform(cmds []*Command, m geom.Matrix2D) {
	for _, c := range cmds {
		for _, slot := range c.slots() {
			*slot = m.Apply(*slot)
		}
	}
}

// Translate adds delta to every coordinate slot.
func Translate(cmds []*Command, delta geom.Point) {
	Transform(cmds, geom.Translate(delta.X, delta.Y))
}

// Rotate turns every coordinate slot by degrees around center.
//
// Transforms act on absolute coordinates immediately, so the order of
// calls matters: rotate-then-translate differs from translate-then-rotate.
func Rotate(cmds []*Command, degrees float64, center geom.Point) {
	Transform(cmds, geom.RotateAbout(degrees, center))
}

// Scale multiplies every coordinate slot by factor.
func Scale(cmds []*Command, factor float64) {
	Transform(cmds, geom.Scale(factor, factor))
}

// ScaleXY multiplies x slots by factor.X and y slots by factor.Y.
func ScaleXY(cmds []*Command, factor geom.Point) {
	Transform(cmds, geom.Scale(factor.X, factor.Y))
}

func (p *Path) Translate(delta geom.Point) { Translate(p.cmds, delta) }

func (p *Path) Rotate(degrees float64, center geom.Point) { Rotate(p.cmds, degrees, center) }

func (p *Path) Scale(factor float64) { Scale(p.cmds, factor) }

func (p *Path) ScaleXY(factor geom.Point) { ScaleXY(p.cmds, factor) }
