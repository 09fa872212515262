package svgpath

import (
	"errors"
	"math"
	"testing"

	"github.com/samuraislice/slicer/internal/geom"
)

const bamboo = "M1,0.3C3.2,5.6 17.3,3.6 18.4,0.2C19.6,-3.1 17.3,104.1 18.4,120C19.1,130 -1,129.7 0,120C2.1,100.3 -1.4,-5.8 1,0.3Z"

const epsilon = 1e-9

func pointsEqual(p1, p2 geom.Point, eps float64) bool {
	return math.Abs(p1.X-p2.X) < eps && math.Abs(p1.Y-p2.Y) < eps
}

func kinds(p *Path) []Kind {
	out := make([]Kind, p.Len())
	for i, c := range p.Commands() {
		out[i] = c.Kind
	}
	return out
}

func equalKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// -------------------------------------------------------------------
// Parse
// -------------------------------------------------------------------

func TestParse_Bamboo(t *testing.T) {
	p := Parse(bamboo)

	want := []Kind{MoveTo, CurveTo, CurveTo, CurveTo, CurveTo, ClosePath}
	if got := kinds(p); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	cmds := p.Commands()
	for i := 1; i < len(cmds)-1; i++ {
		if !pointsEqual(cmds[i].Start, cmds[i-1].End, epsilon) {
			t.Errorf("command %d start = %v, want previous end %v", i, cmds[i].Start, cmds[i-1].End)
		}
	}
	if !pointsEqual(cmds[2].Ctrl1, geom.Pt(19.6, -3.1), epsilon) {
		t.Errorf("second curve ctrl1 = %v", cmds[2].Ctrl1)
	}
	if !cmds[0].Ctrl1.IsNaN() || !cmds[5].Start.IsNaN() {
		t.Errorf("moveto/closepath should not carry control slots")
	}

	ids := make(map[string]bool)
	for _, c := range cmds {
		if c.ID == "" || ids[c.ID] {
			t.Fatalf("command id %q missing or duplicated", c.ID)
		}
		ids[c.ID] = true
	}
}

func TestParse_StringRoundTrip(t *testing.T) {
	if got := Parse(bamboo).String(); got != bamboo {
		t.Errorf("String() = %q, want %q", got, bamboo)
	}
}

func TestParse_TrailingDot(t *testing.T) {
	p := Parse("M37,11C34,-4 1,-4 0.32,14.C0.13,19 -0.3,50 0.3,65Z")
	if p.Len() != 4 {
		t.Fatalf("Len = %d, want 4", p.Len())
	}
	if !pointsEqual(p.At(1).End, geom.Pt(0.32, 14), epsilon) {
		t.Errorf("end = %v, want (0.32, 14)", p.At(1).End)
	}
}

func TestParse_Relative(t *testing.T) {
	p := Parse("m10,10 c0,5 10,5 10,0 z")
	want := []Kind{MoveTo, CurveTo, ClosePath}
	if got := kinds(p); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	c := p.At(1)
	if !pointsEqual(c.Start, geom.Pt(10, 10), epsilon) ||
		!pointsEqual(c.Ctrl1, geom.Pt(10, 15), epsilon) ||
		!pointsEqual(c.Ctrl2, geom.Pt(20, 15), epsilon) ||
		!pointsEqual(c.End, geom.Pt(20, 10), epsilon) {
		t.Errorf("curve = %+v", c)
	}
	if !pointsEqual(p.At(2).End, geom.Pt(10, 10), epsilon) {
		t.Errorf("closepath end = %v, want (10, 10)", p.At(2).End)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParse_Tolerant(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Kind
	}{
		{"empty", "", []Kind{}},
		{"unknown command skipped", "M0,0 Q1,1 2,2 C1,1 2,2 3,3 Z", []Kind{MoveTo, CurveTo, ClosePath}},
		{"closepath before moveto", "Z M0,0 Z", []Kind{MoveTo, ClosePath}},
		{"curve missing operands", "M0,0 C1,1 2,2 Z", []Kind{MoveTo, ClosePath}},
		{"repeated curve groups", "M0,0 C1,1 2,2 3,3 4,4 5,5 0,0 Z", []Kind{MoveTo, CurveTo, CurveTo, ClosePath}},
		{"moveto without pair", "M C1,1 2,2 3,3", []Kind{CurveTo}},
		{"compact signs", "M0-1C1-1 2-2 3-3Z", []Kind{MoveTo, CurveTo, ClosePath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kinds(Parse(tt.in)); !equalKinds(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseStrict(t *testing.T) {
	if _, err := ParseStrict(bamboo); err != nil {
		t.Errorf("ParseStrict(bamboo) = %v", err)
	}
	if _, err := ParseStrict("M0,0 C1,1 2,2 3,3"); !errors.Is(err, ErrMissingClosePath) {
		t.Errorf("err = %v, want ErrMissingClosePath", err)
	}
	if _, err := ParseStrict(""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("err = %v, want ErrEmptyPath", err)
	}
}

// -------------------------------------------------------------------
// Path
// -------------------------------------------------------------------

func TestPath_Validate(t *testing.T) {
	m := NewMoveTo(geom.Pt(0, 0))
	c := NewCurveTo(geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 1), geom.Pt(3, 0))
	tests := []struct {
		name string
		path *Path
		want error
	}{
		{"valid", New(m, c, NewClosePath(geom.Pt(0, 0))), nil},
		{"empty", New(), ErrEmptyPath},
		{"no moveto", New(c, NewClosePath(geom.Pt(0, 0))), ErrMissingMoveTo},
		{"no closepath", New(m, c), ErrMissingClosePath},
		{"moveto inside", New(m, m, NewClosePath(geom.Pt(0, 0))), ErrUnexpectedCommand},
		{"open contour", New(m, c, NewClosePath(geom.Pt(5, 5))), ErrNotClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.path.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPath_ReplaceByID(t *testing.T) {
	p := Parse(bamboo)
	second := p.At(2)
	third := p.At(3)

	a := NewCurveTo(second.Start, second.Ctrl1, second.Ctrl1, second.Ctrl2)
	b := NewCurveTo(second.Ctrl2, second.Ctrl2, second.End, second.End)
	if !p.Replace(second.ID, a, b) {
		t.Fatal("Replace returned false")
	}
	if p.Len() != 7 {
		t.Fatalf("Len = %d, want 7", p.Len())
	}
	if _, ok := p.Find(second.ID); ok {
		t.Error("replaced command still present")
	}
	// Lookup by id still works after indices shifted.
	if got := p.IndexOf(third.ID); got != 4 {
		t.Errorf("IndexOf(third) = %d, want 4", got)
	}
	if p.Replace("cmd_missing", a) {
		t.Error("Replace of unknown id should report false")
	}
}

func TestPath_CloneIsDisjoint(t *testing.T) {
	p := Parse(bamboo)
	cp := p.Clone()
	cp.Translate(geom.Pt(100, 0))

	if p.At(1).ID != cp.At(1).ID {
		t.Error("clone should keep ids")
	}
	if pointsEqual(p.At(1).End, cp.At(1).End, epsilon) {
		t.Error("mutating the clone changed the original")
	}
}

func TestPath_Bounds(t *testing.T) {
	r := Parse("M0,0 C0,10 10,10 10,0 Z").Bounds()
	want := geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if r != want {
		t.Errorf("Bounds = %+v, want %+v", r, want)
	}
}

// -------------------------------------------------------------------
// Transforms
// -------------------------------------------------------------------

func coords(p *Path) []geom.Point {
	var out []geom.Point
	for _, c := range p.Commands() {
		out = append(out, c.Start, c.Ctrl1, c.Ctrl2, c.End)
	}
	return out
}

func sameCoords(t *testing.T, got, want []geom.Point, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].IsNaN() != want[i].IsNaN() {
			t.Fatalf("slot %d NaN mismatch: %v vs %v", i, got[i], want[i])
		}
		if !got[i].IsNaN() && !pointsEqual(got[i], want[i], eps) {
			t.Errorf("slot %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTranslate_RoundTrip(t *testing.T) {
	p := Parse(bamboo)
	orig := coords(p)
	d := geom.Pt(12.5, -40)
	p.Translate(d)
	if !pointsEqual(p.At(0).End, geom.Pt(13.5, -39.7), epsilon) {
		t.Errorf("moveto after translate = %v", p.At(0).End)
	}
	p.Translate(d.Neg())
	sameCoords(t, coords(p), orig, 1e-9)
}

func TestRotate_RoundTrip(t *testing.T) {
	p := Parse(bamboo)
	orig := coords(p)
	c := geom.Pt(9, 60)
	p.Rotate(35, c)
	p.Rotate(-35, c)
	sameCoords(t, coords(p), orig, 1e-9)
}

func TestRotate_QuarterTurn(t *testing.T) {
	p := Parse("M10,0 C10,5 5,10 0,10 Z")
	p.Rotate(90, geom.Pt(0, 0))
	if !pointsEqual(p.At(0).End, geom.Pt(0, 10), 1e-9) {
		t.Errorf("moveto = %v, want (0, 10)", p.At(0).End)
	}
	if !pointsEqual(p.At(1).End, geom.Pt(-10, 0), 1e-9) {
		t.Errorf("curve end = %v, want (-10, 0)", p.At(1).End)
	}
}

func TestTransform_OrderMatters(t *testing.T) {
	a := Parse(bamboo)
	a.Translate(geom.Pt(100, 0))
	a.Rotate(90, geom.Pt(0, 0))

	b := Parse(bamboo)
	b.Rotate(90, geom.Pt(0, 0))
	b.Translate(geom.Pt(100, 0))

	if pointsEqual(a.At(0).End, b.At(0).End, 1e-6) {
		t.Errorf("translate-then-rotate should differ from rotate-then-translate: %v", a.At(0).End)
	}
}

func TestScale(t *testing.T) {
	p := Parse(bamboo)
	orig := coords(p)
	p.Scale(2)
	if !pointsEqual(p.At(2).End, geom.Pt(36.8, 240), 1e-9) {
		t.Errorf("scaled end = %v, want (36.8, 240)", p.At(2).End)
	}
	p.Scale(0.5)
	sameCoords(t, coords(p), orig, 1e-9)

	p.ScaleXY(geom.Pt(2, 0.5))
	if !pointsEqual(p.At(2).End, geom.Pt(36.8, 60), 1e-9) {
		t.Errorf("ScaleXY end = %v, want (36.8, 60)", p.At(2).End)
	}
}

func TestTransform_SkipsNaNSlots(t *testing.T) {
	p := Parse(bamboo)
	p.Translate(geom.Pt(1, 1))
	p.Rotate(10, geom.Pt(5, 5))
	p.Scale(3)
	for _, i := range []int{0, p.Len() - 1} {
		c := p.At(i)
		if !c.Start.IsNaN() || !c.Ctrl1.IsNaN() || !c.Ctrl2.IsNaN() {
			t.Errorf("command %d (%s) gained control slots: %+v", i, c.Kind, c)
		}
	}
}
