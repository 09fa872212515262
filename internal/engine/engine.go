package engine

import (
	"fmt"
	"slices"
	"unicode"

	"github.com/samuraislice/slicer/internal/catalog"
	"github.com/samuraislice/slicer/internal/geom"
)

// Engine owns the shapes and pointer trails of one game and advances them
// frame by frame. It is single-threaded: callers serialize access.
type Engine struct {
	opts    Options
	catalog *catalog.Catalog
	bus     *Bus

	shapes []*Shape
	trails map[string]*Trail

	frame int
}

// New creates an engine. A nil catalog means the embedded default.
func New(opts Options, cat *catalog.Catalog) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Engine{
		opts:    opts,
		catalog: cat,
		bus:     NewBus(),
		trails:  make(map[string]*Trail),
	}
}

func (e *Engine) Bus() *Bus { return e.bus }

func (e *Engine) Options() Options { return e.opts }

func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

func (e *Engine) Frame() int { return e.frame }

// --- Shapes ---

// AddShape creates a shape from cfg and adds it to the scene.
func (e *Engine) AddShape(cfg ShapeConfig) *Shape {
	s := NewShape(cfg, e.opts, e.bus)
	e.shapes = append(e.shapes, s)
	return s
}

// Spawn adds one catalog shape at pos.
func (e *Engine) Spawn(kind string, pos, velocity geom.Point) (*Shape, error) {
	def, err := e.catalog.Shape(kind)
	if err != nil {
		return nil, err
	}
	return e.AddShape(shapeConfig(def, pos, velocity)), nil
}

// SpawnComposite adds every part of a catalog composite. Parts share the
// composite's velocity and, when set, its gravity scale.
func (e *Engine) SpawnComposite(name string, pos, velocity geom.Point) ([]*Shape, error) {
	comp, err := e.catalog.Composite(name)
	if err != nil {
		return nil, err
	}
	out := make([]*Shape, 0, len(comp.Parts))
	for _, part := range comp.Parts {
		def, err := e.catalog.Shape(part.Shape)
		if err != nil {
			return nil, err
		}
		offset := geom.Pt(part.Offset.X, part.Offset.Y).Mul(comp.Scale)
		cfg := shapeConfig(def, pos.Add(offset), velocity)
		if comp.GravityScale != nil {
			cfg.GravityScale = *comp.GravityScale
		}
		s := e.AddShape(cfg)
		if comp.Scale != 1 {
			s.Scale(comp.Scale)
		}
		out = append(out, s)
	}
	return out, nil
}

// SpawnWord lays text out in bamboo glyphs starting at pos. Glyphs do not
// fall. Spaces advance by the glyph spacing; other unknown letters are an
// error and nothing is spawned.
func (e *Engine) SpawnWord(text string, pos geom.Point) ([]*Shape, error) {
	set := e.catalog.Glyphs
	stroke, err := e.catalog.Shape(set.Stroke)
	if err != nil {
		return nil, fmt.Errorf("glyph stroke: %w", err)
	}

	var letters []catalog.LetterDef
	for _, r := range text {
		if unicode.IsSpace(r) {
			letters = append(letters, catalog.LetterDef{Advance: set.Spacing * 2})
			continue
		}
		def, err := e.catalog.Glyph(r)
		if err != nil {
			return nil, err
		}
		letters = append(letters, def)
	}

	var out []*Shape
	cursor := pos
	for _, letter := range letters {
		for _, st := range letter.Strokes {
			cfg := shapeConfig(stroke, geom.Point{}, geom.Point{})
			cfg.GravityScale = 0
			s := NewShape(cfg, e.opts, e.bus)
			for _, deg := range st.Rotate {
				s.Rotate(deg)
			}
			s.Translate(cursor.Add(geom.Pt(st.Translate.X, st.Translate.Y)))
			e.shapes = append(e.shapes, s)
			out = append(out, s)
		}
		cursor.X += letter.Advance + set.Spacing
	}
	return out, nil
}

func shapeConfig(def catalog.ShapeDef, pos, velocity geom.Point) ShapeConfig {
	return ShapeConfig{
		Path:         def.Path,
		Tag:          def.Tag,
		Fill:         def.Fill,
		Stroke:       def.Stroke,
		Pos:          pos,
		Velocity:     velocity,
		Size:         geom.Pt(def.Size.X, def.Size.Y),
		GravityScale: def.Gravity(),
		Tolerance:    def.Tolerance,
		Decoration:   def.Decoration,
	}
}

// Remove drops a top-level shape.
func (e *Engine) Remove(id string) bool {
	i := slices.IndexFunc(e.shapes, func(s *Shape) bool { return s.ID == id })
	if i < 0 {
		return false
	}
	e.shapes = slices.Delete(e.shapes, i, i+1)
	return true
}

// Shape finds a shape by id, including pieces of cut shapes.
func (e *Engine) Shape(id string) (*Shape, bool) {
	var find func([]*Shape) *Shape
	find = func(list []*Shape) *Shape {
		for _, s := range list {
			if s.ID == id {
				return s
			}
			if hit := find(s.children); hit != nil {
				return hit
			}
		}
		return nil
	}
	s := find(e.shapes)
	return s, s != nil
}

// Shapes returns the top-level shapes in draw order.
func (e *Engine) Shapes() []*Shape {
	return append([]*Shape(nil), e.shapes...)
}

// --- Pointer input ---

func (e *Engine) trail(playerID string) *Trail {
	t, ok := e.trails[playerID]
	if !ok {
		t = NewTrail(e.opts.maxDraws())
		e.trails[playerID] = t
	}
	return t
}

func (e *Engine) PointerDown(playerID string, x, y float64) {
	e.trail(playerID).Press(geom.Pt(x, y))
}

func (e *Engine) PointerMove(playerID string, x, y float64) {
	if t, ok := e.trails[playerID]; ok {
		t.Add(geom.Pt(x, y))
	}
}

func (e *Engine) PointerUp(playerID string) {
	if t, ok := e.trails[playerID]; ok {
		t.Release()
	}
}

// Trail returns a player's current trail samples.
func (e *Engine) Trail(playerID string) []TrailPoint {
	if t, ok := e.trails[playerID]; ok {
		return t.Points()
	}
	return nil
}

// --- Frame loop ---

// Step advances one frame: shapes move, every player's fresh trail
// segments are tested against every uncut shape, then trails decay.
// Splits are published on the bus while Step runs.
func (e *Engine) Step() {
	players := make([]string, 0, len(e.trails))
	for id, t := range e.trails {
		t.Sample()
		players = append(players, id)
	}
	slices.Sort(players)

	for _, s := range e.shapes {
		s.Update(e.opts.Gravity)
	}

	for _, s := range e.shapes {
		for _, id := range players {
			s.CheckCollisions(e.trails[id].Segments(), id)
		}
	}

	for id, t := range e.trails {
		t.Decay()
		if t.Len() == 0 && !t.Pressed() {
			delete(e.trails, id)
		}
	}
	e.frame++
}

// Tick advances one frame and returns the draw commands as JSON.
// This is called once per animation frame from the frontend.
func (e *Engine) Tick() string {
	e.Step()
	return e.Render()
}

// Render returns the current draw commands as JSON.
func (e *Engine) Render() string {
	result, _ := DrawCommandsToJSON(e.DrawCommands())
	return result
}

// DrawCommands compiles the scene in painter's order.
func (e *Engine) DrawCommands() []DrawCommand {
	return CompileDrawCommands(e.shapes, e.trails)
}

// HitTest returns the id of the topmost piece whose bounds contain (x, y),
// or the empty string.
func (e *Engine) HitTest(x, y float64) string {
	return HitTest(e.shapes, x, y)
}

// Prune drops shapes whose every piece lies outside the given area,
// returning how many were removed.
func (e *Engine) Prune(area geom.Rect) int {
	before := len(e.shapes)
	e.shapes = slices.DeleteFunc(e.shapes, func(s *Shape) bool {
		b := s.Bounds()
		return b.X > area.X+area.Width || b.X+b.Width < area.X ||
			b.Y > area.Y+area.Height || b.Y+b.Height < area.Y
	})
	return before - len(e.shapes)
}
