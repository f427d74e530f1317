package spritesmith

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Motion helpers sample easing curves at frame granularity so drivers can
// feed parametric movement straight into Frame.Add without hand-rolling
// kinematics tables. One sample per output frame; the first sample is always
// from and the last is always to.

// EaseValues returns frames samples of an eased interpolation from from to
// to. frames < 1 yields nil; frames == 1 yields just from.
func EaseValues(from, to float64, frames int, fn ease.TweenFunc) []float64 {
	if frames < 1 {
		return nil
	}
	values := make([]float64, frames)
	values[0] = from
	if frames == 1 {
		return values
	}
	tw := gween.New(float32(from), float32(to), float32(frames-1), fn)
	for i := 1; i < frames; i++ {
		v, _ := tw.Update(1)
		values[i] = float64(v)
	}
	// gween accumulates float32 steps; pin the endpoint exactly.
	values[frames-1] = to
	return values
}

// EasePath returns frames positions moving from from to to along an eased
// straight line, rounded to whole pixels.
func EasePath(from, to Point, frames int, fn ease.TweenFunc) []Point {
	xs := EaseValues(float64(from.X), float64(to.X), frames, fn)
	ys := EaseValues(float64(from.Y), float64(to.Y), frames, fn)
	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{
			X: int(math.Round(xs[i])),
			Y: int(math.Round(ys[i])),
		}
	}
	return points
}
