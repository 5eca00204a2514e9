package animator

import (
	"math"
	"testing"
)

func TestTimelineDefaultBeforeFirstKeyframe(t *testing.T) {
	tl := NewTimeline(7.0, Linear(lerpFloat))
	tl.Add(10, 5, 20)

	if got := tl.Get(0); got != 7 {
		t.Errorf("Get(0) = %v, want default 7", got)
	}
	if got := tl.Get(9.999); got != 7 {
		t.Errorf("Get(9.999) = %v, want default 7", got)
	}
}

func TestTimelineLinearInterpolation(t *testing.T) {
	tl := NewTimeline(0.0, Linear(lerpFloat))
	tl.Add(0, 10, 100)

	cases := []struct {
		time, want float64
	}{
		{0, 0},
		{5, 50},
		{10, 100},
		{15, 100}, // held after the duration
	}
	for _, c := range cases {
		if got := tl.Get(c.time); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Get(%v) = %v, want %v", c.time, got, c.want)
		}
	}
}

func TestTimelineSecondKeyframeInterpolatesFromPrevious(t *testing.T) {
	tl := NewTimeline(0.0, Linear(lerpFloat))
	tl.Add(0, 10, 100)
	tl.Add(20, 10, 50)

	if got := tl.Get(25); math.Abs(got-75) > 1e-9 {
		t.Errorf("Get(25) = %v, want 75 (halfway from 100 to 50)", got)
	}
}

func TestTimelineZeroDurationJumps(t *testing.T) {
	tl := NewTimeline(false, Constant[bool]())
	tl.Add(5, 0, true)

	if tl.Get(4.999) {
		t.Error("value should still be default just before the keyframe")
	}
	if !tl.Get(5) {
		t.Error("value should jump at the keyframe time")
	}
}

func TestTimelineAddKeepsOrder(t *testing.T) {
	tl := NewTimeline(0.0, Constant[float64]())
	tl.Add(10, 0, 3)
	tl.Add(0, 0, 1)
	tl.Add(5, 0, 2)

	for _, c := range []struct{ time, want float64 }{{0, 1}, {5, 2}, {10, 3}, {100, 3}} {
		if got := tl.Get(c.time); got != c.want {
			t.Errorf("Get(%v) = %v, want %v", c.time, got, c.want)
		}
	}
}

func TestTriangleReturnsToStart(t *testing.T) {
	tl := NewTimeline(1.0, Triangle(lerpFloat))
	tl.Add(0, 10, 3)

	if got := tl.Get(5); math.Abs(got-3) > 1e-9 {
		t.Errorf("Get(5) = %v, want peak 3", got)
	}
	if got := tl.Get(10); math.Abs(got-1) > 1e-9 {
		t.Errorf("Get(10) = %v, want back to 1", got)
	}
	// A later triangle keyframe starts from the default again.
	tl.Add(20, 10, 5)
	if got := tl.Get(20); math.Abs(got-1) > 1e-9 {
		t.Errorf("Get(20) = %v, want 1", got)
	}
	if got := tl.Get(25); math.Abs(got-5) > 1e-9 {
		t.Errorf("Get(25) = %v, want peak 5", got)
	}
}

func TestCubicEasing(t *testing.T) {
	tl := NewTimeline(0.0, Cubic(lerpFloat))
	tl.Add(0, 1, 1)

	if got := tl.Get(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Get(0.5) = %v, want 0.5", got)
	}
	// Ease-in: slower than linear at the start.
	if got := tl.Get(0.25); got >= 0.25 {
		t.Errorf("Get(0.25) = %v, want < 0.25", got)
	}
	// Ease-out: closer to the target than linear at the end.
	if got := tl.Get(0.75); got <= 0.75 {
		t.Errorf("Get(0.75) = %v, want > 0.75", got)
	}
	if got := tl.Get(1); math.Abs(got-1) > 1e-9 {
		t.Errorf("Get(1) = %v, want 1", got)
	}
}
