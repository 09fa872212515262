package engine

import "github.com/samuraislice/slicer/internal/geom"

// TrailPoint is one pointer sample. Draws counts down once per frame; a
// sample is dropped when it reaches zero.
type TrailPoint struct {
	geom.Point
	Draws int
}

// Segment is a stretch of the input polyline between two samples.
type Segment struct {
	A, B geom.Point
}

// Trail is the time-decaying polyline of recent pointer samples for one
// player.
type Trail struct {
	maxDraws int
	points   []TrailPoint
	pressed  bool
	moved    bool
}

func NewTrail(maxDraws int) *Trail {
	if maxDraws < 1 {
		maxDraws = 1
	}
	return &Trail{maxDraws: maxDraws}
}

// Press starts a swipe at p.
func (t *Trail) Press(p geom.Point) {
	t.pressed = true
	t.Add(p)
}

// Add appends a fresh sample. Samples arriving while released are
// ignored.
func (t *Trail) Add(p geom.Point) {
	if !t.pressed {
		return
	}
	t.points = append(t.points, TrailPoint{Point: p, Draws: t.maxDraws})
	t.moved = true
}

// Release ends the swipe. Remaining samples keep decaying.
func (t *Trail) Release() {
	t.pressed = false
}

func (t *Trail) Pressed() bool { return t.pressed }

func (t *Trail) Len() int { return len(t.points) }

// Points returns a copy of the samples, oldest first.
func (t *Trail) Points() []TrailPoint {
	out := make([]TrailPoint, len(t.points))
	copy(out, t.points)
	return out
}

// Sample repeats the newest sample when the pointer is held still, so a
// held pointer keeps laying down points every frame.
func (t *Trail) Sample() {
	if t.pressed && !t.moved && len(t.points) > 0 {
		t.Add(t.points[len(t.points)-1].Point)
	}
}

// Segments returns the fresh segments in order: those whose later sample
// still has all its draws. The newest sample only starts aging once a
// newer one arrives.
func (t *Trail) Segments() []Segment {
	var out []Segment
	for i := 0; i+1 < len(t.points); i++ {
		if t.points[i+1].Draws <= t.maxDraws-1 {
			continue
		}
		out = append(out, Segment{A: t.points[i].Point, B: t.points[i+1].Point})
	}
	return out
}

// Decay ages the trail by one frame. Every sample except the newest loses
// a draw; after release the oldest loses one more. Spent samples are
// removed.
func (t *Trail) Decay() {
	if len(t.points) == 0 {
		t.moved = false
		return
	}
	if !t.pressed {
		t.points[0].Draws--
	}
	for i := 0; i+1 < len(t.points); i++ {
		t.points[i].Draws--
	}
	kept := t.points[:0]
	for _, p := range t.points {
		if p.Draws > 0 {
			kept = append(kept, p)
		}
	}
	t.points = kept
	t.moved = false
}
