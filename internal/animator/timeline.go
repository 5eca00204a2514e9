// Package animator turns a machine, a style, and parsed instructions into
// per-atom keyframe timelines and computes the render state at any time.
package animator

import "sort"

// Interpolator blends between two keyframe values. EndsAtFrom marks
// functions that cycle back to their start value, which changes what the
// following keyframe interpolates from.
type Interpolator[T any] struct {
	Fn         func(fraction float64, from, to T) T
	EndsAtFrom bool
}

// Keyframe holds a value that starts interpolating at Time and is reached
// after Duration, then held.
type Keyframe[T any] struct {
	Time     float64
	Duration float64
	Value    T
}

// Timeline is an ordered sequence of keyframes with a default value before
// the first keyframe.
type Timeline[T any] struct {
	def    T
	frames []Keyframe[T]
	interp Interpolator[T]
}

func NewTimeline[T any](def T, interp Interpolator[T]) *Timeline[T] {
	return &Timeline[T]{def: def, interp: interp}
}

// Add inserts a keyframe, keeping the timeline sorted by time. Among equal
// times, later additions take precedence.
func (tl *Timeline[T]) Add(time, duration float64, value T) {
	idx := sort.Search(len(tl.frames), func(i int) bool {
		return tl.frames[i].Time > time
	})
	tl.frames = append(tl.frames, Keyframe[T]{})
	copy(tl.frames[idx+1:], tl.frames[idx:])
	tl.frames[idx] = Keyframe[T]{Time: time, Duration: duration, Value: value}
}

// Get interpolates the value at the given time. A keyframe interpolates from
// the previous keyframe's endpoint value; before the first keyframe the
// default value applies.
func (tl *Timeline[T]) Get(time float64) T {
	idx := sort.Search(len(tl.frames), func(i int) bool {
		return tl.frames[i].Time > time
	})
	if idx == 0 {
		return tl.def
	}
	kf := tl.frames[idx-1]
	from := tl.def
	if idx >= 2 && !tl.interp.EndsAtFrom {
		from = tl.frames[idx-2].Value
	}
	fraction := 1.0
	if kf.Duration > 0 {
		fraction = (time - kf.Time) / kf.Duration
		if fraction > 1 {
			fraction = 1
		}
	}
	return tl.interp.Fn(fraction, from, kf.Value)
}

// Constant always yields the keyframe value for its whole duration.
func Constant[T any]() Interpolator[T] {
	return Interpolator[T]{Fn: func(_ float64, _, to T) T { return to }}
}

// Linear interpolates linearly using the given lerp.
func Linear[T any](lerp func(from, to T, fraction float64) T) Interpolator[T] {
	return Interpolator[T]{Fn: func(f float64, from, to T) T { return lerp(from, to, f) }}
}

// Triangle goes linearly to the keyframe value in the first half and back in
// the second, always returning to the start value.
func Triangle[T any](lerp func(from, to T, fraction float64) T) Interpolator[T] {
	return Interpolator[T]{
		EndsAtFrom: true,
		Fn: func(f float64, from, to T) T {
			f *= 2
			if f >= 1 {
				f = 1 - (f - 1)
			}
			return lerp(from, to, f)
		},
	}
}

// Cubic eases in and out with a cubic curve (easeInOutCubic).
func Cubic[T any](lerp func(from, to T, fraction float64) T) Interpolator[T] {
	return Interpolator[T]{
		Fn: func(f float64, from, to T) T {
			var c float64
			if f < 0.5 {
				c = 4 * f * f * f
			} else {
				x := -2*f + 2
				c = 1 - x*x*x/2
			}
			return lerp(from, to, c)
		},
	}
}
