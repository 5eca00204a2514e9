package video

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/floeze/naviz/internal/animator"
	"github.com/floeze/naviz/internal/parser"
)

func TestFrameCount(t *testing.T) {
	opts := Options{FPS: 30}
	if got := FrameCount(2, opts); got != 60 {
		t.Errorf("FrameCount(2) = %d, want 60", got)
	}
	if got := FrameCount(0, opts); got != 1 {
		t.Errorf("FrameCount(0) = %d, want 1", got)
	}

	slow := Options{FPS: 10, Speed: 2}
	if got := FrameCount(4, slow); got != 20 {
		t.Errorf("FrameCount(4, speed 2) = %d, want 20", got)
	}
}

func TestFrameTime(t *testing.T) {
	opts := Options{FPS: 10, Speed: 2}
	if got := FrameTime(5, opts); got != 1 {
		t.Errorf("FrameTime(5) = %v, want 1", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	opts.defaults()
	if opts.Width != 1920 || opts.Height != 1080 || opts.FPS != 30 || opts.Speed != 1 || opts.FFmpeg != "ffmpeg" {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}

const testMachine = `
name: "Export Machine"
time {
    load: 2
    store: 2
    rz: 1
    ry: 1
    cz: 1
    unit: "us"
}
movement {
    speed: 1
    acceleration { up: 1  down: 1 }
}
distance { interaction: 3 }
trap trap0 { position: (0, 0) }
trap trap1 { position: (3, 0) }
zone zone0 {
    from: (-1, -1)
    to: (4, 1)
}
`

const testStyle = `
name: "Export Style"
viewport { color: #1a1a1a }
atom {
    radius: 0.3
    trapped { color: #40c040 }
    shuttling { color: #4040c0 }
    legend {
        font { size: 0.4  color: #ffffff  family: "sans-serif" }
        name { ^atom(\d+)$: "q$1" }
    }
}
zone {
    legend { display: true  title: "Zones" }
    config ^zone.*$ {
        name: "Interaction"
        color: #c04040
        line { thickness: 0.05  dash { length: 0.2  duty: 50% } }
    }
}
operation {
    legend { display: true  title: "Operations" }
    config {
        rz { name: "RZ"  color: #c0c040  radius: 150% }
        ry { name: "RY"  color: #40c0c0  radius: 150% }
        cz { name: "CZ"  color: #c040c0  radius: 150% }
    }
}
machine {
    legend { display: true  title: "Machine" }
    trap { name: "Trap"  radius: 0.15  color: #808080 }
    shuttle { name: "Shuttle"  color: #606060  line { thickness: 0.02  dash { length: 0.2  duty: 50% } } }
}
coordinate {
    tick { x: 1  y: 1  color: #404040  line { thickness: 0.02  dash { length: 0.1  duty: 50% } } }
    number {
        font { size: 0.3  color: #a0a0a0  family: "sans-serif" }
        x { distance: 2  position: bottom }
        y { distance: 2  position: left }
    }
    axis { x: "x"  y: "y" }
}
sidebar { font { size: 16  color: #ffffff  family: "sans-serif" } }
time {
    display: true
    prefix: "t = "
    font { size: 20  color: #ffffff  family: "sans-serif" }
}
`

func testAnimator(t *testing.T) *animator.Animator {
	t.Helper()
	machine, err := parser.ParseMachineConfig(testMachine)
	require.NoError(t, err)
	visual, err := parser.ParseVisualConfig(testStyle)
	require.NoError(t, err)
	input, err := parser.ParseInstructions("atom (0, 0) atom0\n@0 load atom0\n@2 move (3, 0) atom0\n")
	require.NoError(t, err)
	anim, err := animator.New(machine, visual, input)
	require.NoError(t, err)
	return anim
}

func TestRenderFramesOrdered(t *testing.T) {
	anim := testAnimator(t)

	opts := Options{Width: 64, Height: 48, FPS: 2, Speed: 2}
	opts.defaults()
	total := FrameCount(anim.Duration(), opts)
	require.Greater(t, total, 1)

	var buf bytes.Buffer
	var calls []int
	err := renderFrames(context.Background(), anim, opts, total, &buf, func(frame, t int) {
		calls = append(calls, frame)
	})
	require.NoError(t, err)

	// Progress must arrive in frame order.
	require.Len(t, calls, total)
	for i, frame := range calls {
		require.Equal(t, i+1, frame)
	}

	// The stream is a concatenation of PNGs, starting with the signature.
	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	require.Equal(t, pngMagic, buf.Bytes()[:4])
	require.Equal(t, total, bytes.Count(buf.Bytes(), pngMagic))
}

func TestRenderFrameSize(t *testing.T) {
	anim := testAnimator(t)
	opts := Options{Width: 32, Height: 24}
	opts.defaults()

	frame, err := renderFrame(anim, opts, 0)
	require.NoError(t, err)
	require.NotEmpty(t, frame)
}
