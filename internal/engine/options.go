package engine

import "math"

// Options tunes the slicing engine. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	// Gravity is added to a shape's vertical velocity each frame, scaled
	// by the shape's GravityScale.
	Gravity float64
	// MaxDraws is the freshness a pointer sample starts with.
	MaxDraws int
	// SampleStep is the curve parameter step used by the detector.
	SampleStep float64
	// SplitDepth bounds the curve splitter's bisection.
	SplitDepth int
	// Tolerance is the default dedup box in pixels for shapes that do not
	// set their own.
	Tolerance float64
	// SplitImpulse is added to the horizontal velocity of the two pieces,
	// in opposite directions.
	SplitImpulse float64
}

func DefaultOptions() Options {
	return Options{
		Gravity:      0.1,
		MaxDraws:     6,
		SampleStep:   0.05,
		SplitDepth:   7,
		Tolerance:    10,
		SplitImpulse: 1,
	}
}

// samples returns how many segments each curve is cut into.
func (o Options) samples() int {
	if o.SampleStep <= 0 || o.SampleStep > 1 {
		return 20
	}
	return max(1, int(math.Round(1/o.SampleStep)))
}

func (o Options) maxDraws() int {
	if o.MaxDraws < 1 {
		return 6
	}
	return o.MaxDraws
}
