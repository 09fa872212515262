// Package raster fills shape paths into images. It backs PNG previews and
// measures filled area.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"

	"github.com/samuraislice/slicer/internal/geom"
	"github.com/samuraislice/slicer/internal/svgpath"
)

// Canvas maps a world rectangle onto an RGBA image.
type Canvas struct {
	img    *image.RGBA
	origin geom.Point
	scale  float64
}

// NewCanvas creates a canvas showing view at scale pixels per unit,
// cleared to bg.
func NewCanvas(view geom.Rect, scale float64, bg color.Color) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	w := max(1, int(math.Ceil(view.Width*scale)))
	h := max(1, int(math.Ceil(view.Height*scale)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{img: img, origin: geom.Pt(view.X, view.Y), scale: scale}
}

// Fill paints p with col using the nonzero rule.
func (c *Canvas) Fill(p *svgpath.Path, col color.Color) {
	b := c.img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	c.trace(p, r)
	r.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

func (c *Canvas) px(p geom.Point) (float32, float32) {
	q := p.Sub(c.origin).Mul(c.scale)
	return float32(q.X), float32(q.Y)
}

func (c *Canvas) trace(p *svgpath.Path, r *vector.Rasterizer) {
	for _, cmd := range p.Commands() {
		switch cmd.Kind {
		case svgpath.MoveTo:
			r.MoveTo(c.px(cmd.End))
		case svgpath.CurveTo:
			x1, y1 := c.px(cmd.Ctrl1)
			x2, y2 := c.px(cmd.Ctrl2)
			x3, y3 := c.px(cmd.End)
			r.CubeTo(x1, y1, x2, y2, x3, y3)
		case svgpath.ClosePath:
			r.ClosePath()
		}
	}
}

// Area estimates the filled area of p in square units by rasterizing it
// at scale pixels per unit and summing coverage.
func Area(p *svgpath.Path, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	b := p.Bounds()
	view := geom.Rect{X: b.X - 1, Y: b.Y - 1, Width: b.Width + 2, Height: b.Height + 2}

	c := &Canvas{origin: geom.Pt(view.X, view.Y), scale: scale}
	w := max(1, int(math.Ceil(view.Width*scale)))
	h := max(1, int(math.Ceil(view.Height*scale)))
	mask := image.NewAlpha(image.Rect(0, 0, w, h))

	r := vector.NewRasterizer(w, h)
	c.trace(p, r)
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	var sum float64
	for _, a := range mask.Pix {
		sum += float64(a)
	}
	return sum / 255 / (scale * scale)
}

// ParseColor accepts #rgb, #rrggbb and SVG color names.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, false
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
