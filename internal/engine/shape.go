package engine

import (
	"github.com/samuraislice/slicer/internal/geom"
	"github.com/samuraislice/slicer/internal/logging"
	"github.com/samuraislice/slicer/internal/svgpath"
	"github.com/samuraislice/slicer/internal/typeid"
)

// ShapeConfig describes a shape to create.
type ShapeConfig struct {
	// Path is parsed and translated by Pos. When empty, Commands is used
	// as-is (absolute coordinates) after being copied.
	Path     string
	Commands []*svgpath.Command

	Tag    string
	Fill   string
	Stroke string

	Pos      geom.Point
	Velocity geom.Point
	Size     geom.Point

	GravityScale float64
	// Tolerance is the dedup box for this shape; zero means the engine
	// default.
	Tolerance float64
	// Decoration shapes are drawn and move but are never cut.
	Decoration bool
}

// Shape is a sliceable entity: a closed path plus kinematics.
//
// Up to two intersections are recorded. Each inserts a cut vertex into
// the path by splitting the curve it landed on. The second one partitions
// the path into two child shapes and publishes a SplitEvent; from then on
// the shape only forwards motion to its children.
type Shape struct {
	ID     string
	Tag    string
	Fill   string
	Stroke string

	Pos          geom.Point
	Velocity     geom.Point
	Size         geom.Point
	GravityScale float64
	Tolerance    float64
	Cuttable     bool

	opts     Options
	bus      *Bus
	path     *svgpath.Path
	records  []Intersection
	children []*Shape
	// lineage maps a replaced curve id to the two curves that took its
	// place, so an intersection against a stale id can still be placed.
	lineage map[string]splitRecord
}

type splitRecord struct {
	ids    [2]string
	halves [2]geom.Cubic
}

// NewShape builds a shape from cfg. bus may be nil, in which case splits
// are not announced.
func NewShape(cfg ShapeConfig, opts Options, bus *Bus) *Shape {
	var path *svgpath.Path
	if cfg.Path != "" {
		path = svgpath.Parse(cfg.Path)
		path.Translate(cfg.Pos)
	} else {
		cmds := make([]*svgpath.Command, len(cfg.Commands))
		for i, c := range cfg.Commands {
			cmds[i] = c.Clone()
		}
		path = svgpath.New(cmds...)
	}

	tol := cfg.Tolerance
	if tol <= 0 {
		tol = opts.Tolerance
	}

	return &Shape{
		ID:           typeid.NewShapeID(),
		Tag:          cfg.Tag,
		Fill:         cfg.Fill,
		Stroke:       cfg.Stroke,
		Pos:          cfg.Pos,
		Velocity:     cfg.Velocity,
		Size:         cfg.Size,
		GravityScale: cfg.GravityScale,
		Tolerance:    tol,
		Cuttable:     !cfg.Decoration,
		opts:         opts,
		bus:          bus,
		path:         path,
		lineage:      make(map[string]splitRecord),
	}
}

// Path returns the live path. Callers must not keep it across a split.
func (s *Shape) Path() *svgpath.Path { return s.path }

func (s *Shape) PathString() string { return s.path.String() }

func (s *Shape) IsCut() bool { return len(s.children) > 0 }

func (s *Shape) Children() []*Shape {
	return append([]*Shape(nil), s.children...)
}

// Intersections returns the recorded cuts, oldest first.
func (s *Shape) Intersections() []Intersection {
	return append([]Intersection(nil), s.records...)
}

// Leaves returns the shapes actually on screen: s itself, or the pieces
// it was cut into.
func (s *Shape) Leaves() []*Shape {
	if !s.IsCut() {
		return []*Shape{s}
	}
	var out []*Shape
	for _, c := range s.children {
		out = append(out, c.Leaves()...)
	}
	return out
}

func (s *Shape) Bounds() geom.Rect {
	if !s.IsCut() {
		return s.path.Bounds()
	}
	var r geom.Rect
	for i, c := range s.children {
		if i == 0 {
			r = c.Bounds()
			continue
		}
		r = r.Union(c.Bounds())
	}
	return r
}

// Update advances one frame of motion.
func (s *Shape) Update(gravity float64) {
	if s.IsCut() {
		for _, c := range s.children {
			c.Update(gravity)
		}
		return
	}
	s.Velocity.Y += gravity * s.GravityScale
	s.Pos = s.Pos.Add(s.Velocity)
	s.path.Translate(s.Velocity)
}

func (s *Shape) Translate(d geom.Point) {
	if s.IsCut() {
		for _, c := range s.children {
			c.Translate(d)
		}
		return
	}
	s.Pos = s.Pos.Add(d)
	s.path.Translate(d)
}

func (s *Shape) SetPos(p geom.Point) {
	s.Translate(p.Sub(s.Pos))
}

// Rotate turns the shape about its position.
func (s *Shape) Rotate(degrees float64) {
	s.RotateAbout(degrees, s.Pos)
}

func (s *Shape) RotateAbout(degrees float64, center geom.Point) {
	if s.IsCut() {
		for _, c := range s.children {
			c.RotateAbout(degrees, center)
		}
		return
	}
	s.path.Rotate(degrees, center)
	s.Pos = geom.RotateAbout(degrees, center).Apply(s.Pos)
}

// Scale grows the shape about its position.
func (s *Shape) Scale(factor float64) {
	if s.IsCut() {
		for _, c := range s.children {
			c.Scale(factor)
		}
		return
	}
	origin := s.Pos
	s.path.Translate(origin.Neg())
	s.path.Scale(factor)
	s.path.Translate(origin)
	s.Size = s.Size.Mul(factor)
}

// CheckCollisions tests the fresh segments of one player's trail against
// the shape and records what they hit. It returns the accepted records.
func (s *Shape) CheckCollisions(segments []Segment, playerID string) []Intersection {
	if s.IsCut() || !s.Cuttable || len(segments) == 0 {
		return nil
	}
	found := Detect(s.path, segments, s.records, DetectOptions{
		Samples:   s.opts.samples(),
		Tolerance: s.Tolerance,
		PlayerID:  playerID,
	})

	var accepted []Intersection
	for _, rec := range found {
		if s.RecordIntersection(rec) {
			accepted = append(accepted, rec)
		}
	}
	return accepted
}

// RecordIntersection inserts a cut vertex at rec. It reports false when
// the record is ignored: the shape is already cut, the point duplicates an
// earlier one, or its curve can no longer be found. The second accepted
// record splits the shape.
func (s *Shape) RecordIntersection(rec Intersection) bool {
	log := logging.Logger()
	if s.IsCut() || len(s.records) >= 2 {
		return false
	}
	if containsPoint(s.records, rec.Point, s.Tolerance) {
		return false
	}

	var snapshot *svgpath.Path
	if len(s.records) == 1 {
		snapshot = s.path.Clone()
	}

	ownerID, ok := s.insertVertex(rec)
	if !ok {
		log.Debug("intersection owner not found", "shape", s.ID, "owner", rec.OwnerID)
		return false
	}
	s.records = append(s.records, rec)
	if len(s.records) < 2 {
		return true
	}

	a, b, err := Partition(s.path)
	if err != nil {
		log.Debug("discarding cut", "shape", s.ID, "error", err)
		s.path = snapshot
		s.records = s.records[:1]
		delete(s.lineage, ownerID)
		return false
	}

	s.children = []*Shape{
		s.child(a, -s.opts.SplitImpulse),
		s.child(b, s.opts.SplitImpulse),
	}
	log.Debug("shape split", "shape", s.ID, "tag", s.Tag, "player", rec.PlayerID)
	s.bus.Publish(SplitEvent{
		ID:       typeid.NewEventID(),
		Shape:    s,
		Point:    rec.Point,
		PlayerID: rec.PlayerID,
	})
	return true
}

// insertVertex splits the curve rec refers to and returns that curve's id.
func (s *Shape) insertVertex(rec Intersection) (string, bool) {
	owner := s.resolve(rec)
	if owner == nil {
		return "", false
	}
	first, second := SplitCurve(owner, rec.Point, s.opts.SplitDepth)
	s.lineage[owner.ID] = splitRecord{
		ids:    [2]string{first.ID, second.ID},
		halves: [2]geom.Cubic{first.Cubic(), second.Cubic()},
	}
	s.path.Replace(owner.ID, first, second)
	return owner.ID, true
}

// resolve finds the live curve for rec, following lineage when the curve
// it names was itself split earlier.
func (s *Shape) resolve(rec Intersection) *svgpath.Command {
	id := rec.OwnerID
	for range len(s.lineage) + 1 {
		if c, ok := s.path.Find(id); ok {
			if c.Kind != svgpath.CurveTo {
				return nil
			}
			return c
		}
		split, ok := s.lineage[id]
		if !ok {
			return nil
		}
		if geom.PointInConvexHull(split.halves[0], rec.Point) {
			id = split.ids[0]
		} else {
			id = split.ids[1]
		}
	}
	return nil
}

func (s *Shape) child(path *svgpath.Path, impulse float64) *Shape {
	return &Shape{
		ID:           typeid.NewShapeID(),
		Tag:          s.Tag,
		Fill:         s.Fill,
		Stroke:       s.Stroke,
		Pos:          s.Pos,
		Velocity:     s.Velocity.Add(geom.Pt(impulse, 0)),
		Size:         s.Size,
		GravityScale: s.GravityScale,
		Tolerance:    s.Tolerance,
		Cuttable:     s.Cuttable,
		opts:         s.opts,
		bus:          s.bus,
		path:         path,
		lineage:      make(map[string]splitRecord),
	}
}
