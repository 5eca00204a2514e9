package render

import (
	"image/color"
	"testing"

	"github.com/floeze/naviz/internal/state"
)

func TestRasterFill(t *testing.T) {
	c := NewRasterCanvas(4, 4)
	c.Fill(state.Color{0x10, 0x20, 0x30, 0xff})
	got := c.Image().RGBAAt(2, 2)
	want := color.RGBA{0x10, 0x20, 0x30, 0xff}
	if got != want {
		t.Errorf("fill pixel = %v, want %v", got, want)
	}
}

func TestRasterCircle(t *testing.T) {
	c := NewRasterCanvas(20, 20)
	c.Fill(state.Color{0, 0, 0, 0xff})
	c.Circle(CircleSpec{X: 10, Y: 10, Radius: 5, Color: state.Color{0xff, 0, 0, 0xff}})

	if got := c.Image().RGBAAt(10, 10); got.R != 0xff {
		t.Errorf("circle center = %v, want red", got)
	}
	if got := c.Image().RGBAAt(1, 1); got.R != 0 {
		t.Errorf("corner = %v, want background", got)
	}
}

func TestRasterRingLeavesHole(t *testing.T) {
	c := NewRasterCanvas(20, 20)
	c.Fill(state.Color{0, 0, 0, 0xff})
	c.Circle(CircleSpec{X: 10, Y: 10, Radius: 8, InnerRadius: 6, Color: state.Color{0xff, 0xff, 0xff, 0xff}})

	if got := c.Image().RGBAAt(10, 10); got.R != 0 {
		t.Errorf("ring center = %v, want background", got)
	}
	if got := c.Image().RGBAAt(10, 3); got.R != 0xff {
		t.Errorf("ring band = %v, want white", got)
	}
}

func TestRasterLine(t *testing.T) {
	c := NewRasterCanvas(20, 20)
	c.Fill(state.Color{0, 0, 0, 0xff})
	c.Line(LineSpec{X1: 0, Y1: 10, X2: 20, Y2: 10, Width: 2, Color: state.Color{0, 0xff, 0, 0xff}})

	if got := c.Image().RGBAAt(10, 10); got.G != 0xff {
		t.Errorf("line pixel = %v, want green", got)
	}
	if got := c.Image().RGBAAt(10, 2); got.G != 0 {
		t.Errorf("off-line pixel = %v, want background", got)
	}
}

func TestDashSegments(t *testing.T) {
	segs := dashSegments(0, 0, 10, 0, 4, 0.5)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	if segs[0] != [4]float64{0, 0, 2, 0} {
		t.Errorf("first segment = %v", segs[0])
	}
	if segs[1] != [4]float64{4, 0, 6, 0} {
		t.Errorf("second segment = %v", segs[1])
	}
	if segs[2] != [4]float64{8, 0, 10, 0} {
		t.Errorf("third segment = %v", segs[2])
	}

	solid := dashSegments(0, 0, 10, 0, 0, 0)
	if len(solid) != 1 || solid[0] != [4]float64{0, 0, 10, 0} {
		t.Errorf("solid line = %v", solid)
	}
}

func TestRasterFullFrame(t *testing.T) {
	cfg := state.ExampleConfig()
	s := state.ExampleState()

	c := NewRasterCanvas(640, 480)
	(&Renderer{}).Draw(c, 640, 480, state.Color{0x1a, 0x1a, 0x1a, 0xff}, cfg, s)

	img := c.Image()
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 480 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	// Background must be set somewhere near the top-left padding area.
	if got := img.RGBAAt(2, 2); got.A != 0xff {
		t.Errorf("background pixel = %v, want opaque", got)
	}
}
