package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/samuraislice/slicer/internal/engine"
	"github.com/samuraislice/slicer/internal/geom"
	"github.com/samuraislice/slicer/internal/svgpath"
)

const square = "M0,0C0,0 10,0 10,0C10,0 10,10 10,10C10,10 0,10 0,10C0,10 0,0 0,0Z"

const bamboo = "M1,0.3C3.2,5.6 17.3,3.6 18.4,0.2C19.6,-3.1 17.3,104.1 18.4,120C19.1,130 -1,129.7 0,120C2.1,100.3 -1.4,-5.8 1,0.3Z"

func TestArea_Square(t *testing.T) {
	got := Area(svgpath.Parse(square), 4)
	if math.Abs(got-100) > 1 {
		t.Errorf("Area(square) = %.3f, want 100", got)
	}
}

func TestArea_ConservedBySplit(t *testing.T) {
	opts := engine.DefaultOptions()
	s := engine.NewShape(engine.ShapeConfig{Path: bamboo}, opts, nil)
	whole := Area(s.Path(), 4)

	s.CheckCollisions([]engine.Segment{{A: geom.Pt(-20, 65), B: geom.Pt(40, 65)}}, "p1")
	if !s.IsCut() {
		t.Fatal("shape should be cut")
	}

	var parts float64
	for _, c := range s.Children() {
		a := Area(c.Path(), 4)
		if a <= 0 {
			t.Errorf("piece %s has no area", c.ID)
		}
		parts += a
	}
	if math.Abs(parts-whole)/whole > 0.02 {
		t.Errorf("pieces cover %.1f, whole shape %.1f", parts, whole)
	}
}

func TestCanvas_Fill(t *testing.T) {
	c := NewCanvas(geom.Rect{X: -5, Y: -5, Width: 20, Height: 20}, 2, color.White)
	c.Fill(svgpath.Parse(square), color.RGBA{R: 255, A: 255})

	img := c.img
	if got := img.Bounds().Dx(); got != 40 {
		t.Fatalf("width = %d, want 40", got)
	}
	// World (5,5) is pixel (20,20), inside the square.
	if got := img.RGBAAt(20, 20); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("inside pixel = %v, want red", got)
	}
	// World (-4,-4) is pixel (2,2), outside.
	if got := img.RGBAAt(2, 2); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("outside pixel = %v, want white", got)
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}, true},
		{"#8fbf5a", color.RGBA{R: 0x8f, G: 0xbf, B: 0x5a, A: 255}, true},
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"black", color.RGBA{A: 255}, true},
		{" Red ", color.RGBA{R: 255, A: 255}, true},
		{"#12345", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
		{"not-a-color", color.RGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
