package animator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/floeze/naviz/internal/parser"
	"github.com/floeze/naviz/internal/state"
)

const testMachine = `
name: "Test Machine"
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
name: "Test Style"
viewport { color: #101010 }
atom {
    radius: 1
    trapped { color: #0000ff }
    shuttling { color: #ffff00 }
    legend {
        font { size: 4  color: #ffffff  family: "sans-serif" }
        name { ^atom(\d+)$: "q$1" }
    }
}
zone {
    legend { display: true  title: "Zones" }
    config ^zone.*$ {
        name: "Interaction"
        color: #ff0000
        line { thickness: 0.3  dash { length: 2  duty: 50% } }
    }
}
operation {
    legend { display: true  title: "Operations" }
    config {
        rz { name: "RZ"  color: #00ff00ff  radius: 150% }
        ry { name: "RY"  color: #00ffff  radius: 150% }
        cz { name: "CZ"  color: #ff00ff  radius: 2 }
    }
}
machine {
    legend { display: true  title: "Machine" }
    trap { name: "Trap"  radius: 1.5  color: #808080 }
    shuttle { name: "Shuttle"  color: #404040  line { thickness: 0.2  dash { length: 1  duty: 50% } } }
}
coordinate {
    tick { x: 1  y: 1  color: #303030  line { thickness: 0.2  dash { length: 1  duty: 50% } } }
    number {
        font { size: 3  color: #909090  family: "sans-serif" }
        x { distance: 2  position: bottom }
        y { distance: 2  position: left }
    }
    axis { x: "x"  y: "y" }
}
sidebar { font { size: 4  color: #ffffff  family: "sans-serif" } }
time {
    display: true
    prefix: "t = "
    font { size: 5  color: #ffffff  family: "sans-serif" }
}
`

func mustAnimator(t *testing.T, input string) *Animator {
	t.Helper()

	items, err := parser.ParseConfig(testMachine)
	require.NoError(t, err)
	machine, err := parser.ParseMachine(items)
	require.NoError(t, err)

	items, err = parser.ParseConfig(testStyle)
	require.NoError(t, err)
	visual, err := parser.ParseVisual(items)
	require.NoError(t, err)

	ins, err := parser.ParseInstructions(input)
	require.NoError(t, err)

	a, err := New(machine, visual, ins)
	require.NoError(t, err)
	return a
}

func TestAnimatorMoveSequence(t *testing.T) {
	a := mustAnimator(t, `
atom (0, 0) atom0
@0 load atom0
@+0 move (0, 4) atom0
@+0 store atom0
`)

	// load 0..2, move 2..7 (ramp 1 + cruise 3 + ramp 1), store 7..9
	require.InDelta(t, 9, a.Duration(), 1e-9)

	s := a.State(1)
	require.Len(t, s.Atoms, 1)
	require.True(t, s.Atoms[0].Shuttle, "atom should be shuttling during load")
	require.Equal(t, "q0", s.Atoms[0].Label)

	// Position holds until the move starts.
	require.InDelta(t, 0, a.State(2).Atoms[0].Position.Y, 1e-9)
	// Cubic easing is symmetric: halfway through the move is halfway there.
	require.InDelta(t, 2, a.State(4.5).Atoms[0].Position.Y, 1e-9)
	require.InDelta(t, 4, a.State(7).Atoms[0].Position.Y, 1e-9)

	// Still shuttling until the store finishes.
	require.True(t, a.State(8.9).Atoms[0].Shuttle)
	require.False(t, a.State(9).Atoms[0].Shuttle)
}

func TestAnimatorShuttlingColor(t *testing.T) {
	a := mustAnimator(t, `
atom (0, 0) atom0
@0 load atom0
`)

	trapped := a.State(-1).Atoms[0]
	require.False(t, trapped.Shuttle)
	require.Equal(t, state.Color{0x00, 0x00, 0xff, 0xff}, trapped.Color)

	shuttling := a.State(1).Atoms[0]
	require.True(t, shuttling.Shuttle)
	require.Equal(t, state.Color{0xff, 0xff, 0x00, 0xff}, shuttling.Color)
}

func TestAnimatorZoneTargeting(t *testing.T) {
	a := mustAnimator(t, `
atom (0, 0) atom0
atom (3, 0) atom1
atom (10, 10) atom2
@0 rz 1.57 zone0
`)

	// Operation color peaks at the halfway point of the triangle.
	s := a.State(0.5)
	opColor := state.Color{0x00, 0xff, 0x00, 0xff}
	require.Equal(t, opColor, s.Atoms[0].Color, "atom0 is inside the zone")
	require.Equal(t, opColor, s.Atoms[1].Color, "atom1 is inside the zone")
	require.Equal(t, state.Color{0x00, 0x00, 0xff, 0xff}, s.Atoms[2].Color, "atom2 is outside the zone")

	// Size pulses to the operation radius (150% of atom radius 1).
	require.InDelta(t, 1.5, s.Atoms[0].Size, 1e-9)
	require.InDelta(t, 1, s.Atoms[2].Size, 1e-9)

	// After the operation everything returns to normal.
	end := a.State(1)
	require.Equal(t, state.Color{0x00, 0x00, 0xff, 0xff}, end.Atoms[0].Color)
	require.InDelta(t, 1, end.Atoms[0].Size, 1e-9)
}

func TestAnimatorCzPairs(t *testing.T) {
	a := mustAnimator(t, `
atom (0, 0) atom0
atom (3, 0) atom1
atom (-1, 1) atom2
@0 cz zone0
`)

	// atom0 and atom1 are 3 apart (== interaction distance): both fire.
	// atom2 is in the zone but close to neither? It is sqrt(2) from atom0,
	// so it pairs with atom0 as well.
	s := a.State(0.5)
	opColor := state.Color{0xff, 0x00, 0xff, 0xff}
	require.Equal(t, opColor, s.Atoms[0].Color)
	require.Equal(t, opColor, s.Atoms[1].Color)
	require.Equal(t, opColor, s.Atoms[2].Color)
}

func TestAnimatorCzUnknownZone(t *testing.T) {
	a := mustAnimator(t, `
atom (0, 0) atom0
@0 cz nowhere
`)
	s := a.State(0.5)
	require.Equal(t, state.Color{0x00, 0x00, 0xff, 0xff}, s.Atoms[0].Color)
}

func TestAnimatorTimeString(t *testing.T) {
	a := mustAnimator(t, "atom (0, 0) atom0\n")
	require.Equal(t, "t = 12.5 us", a.State(12.52).Time)
}

func TestAnimatorConfig(t *testing.T) {
	a := mustAnimator(t, `
atom (0, 0) atom0
@0 move (8, 6) atom0
`)
	cfg := a.Config()

	require.Len(t, cfg.Legend.Entries, 3)
	require.Equal(t, "Zones", cfg.Legend.Entries[0].Name)
	require.Len(t, cfg.Legend.Entries[0].Entries, 1)
	require.Equal(t, "Interaction", cfg.Legend.Entries[0].Entries[0].Text)
	require.Equal(t, "Operations", cfg.Legend.Entries[1].Name)
	require.Len(t, cfg.Legend.Entries[1].Entries, 3)
	require.Equal(t, "Machine", cfg.Legend.Entries[2].Name)

	require.Len(t, cfg.Machine.Traps.Positions, 2)
	require.Len(t, cfg.Machine.Zones, 1)
	require.Equal(t, state.Position{X: -1, Y: -1}, cfg.Machine.Zones[0].Start)
	require.Equal(t, state.Position{X: 5, Y: 2}, cfg.Machine.Zones[0].Size)

	// Content extent tracks the instruction positions.
	require.Equal(t, state.Position{X: 8, Y: 6}, cfg.ContentExtent[1])

	require.True(t, cfg.DisplayTime())
	require.True(t, cfg.DisplaySidebar())

	require.Equal(t, state.Color{0x10, 0x10, 0x10, 0xff}, a.Background())
}

func TestMoveDuration(t *testing.T) {
	a := mustAnimator(t, "atom (0, 0) atom0\n")

	// Short move: max speed never reached, symmetric ramps.
	// t = sqrt(2d / (a_up + a_down)); d = 1 -> 2 * 1 = 2
	require.InDelta(t, 2, a.moveDuration(1), 1e-9)

	// Long move: ramp-up + cruise + ramp-down.
	// Ramps take 1 each and cover 0.5 each; cruise covers 9 at speed 1.
	require.InDelta(t, 11, a.moveDuration(10), 1e-9)

	require.InDelta(t, 0, a.moveDuration(0), 1e-9)
}

func TestAnimatorRelativeFromStart(t *testing.T) {
	a := mustAnimator(t, `
atom (0, 0) atom0
atom (5, 5) atom1
@0 load atom0
@=0 load atom1
`)
	// Both loads start at 0 because the second is relative to the first's start.
	s := a.State(0.5)
	require.True(t, s.Atoms[0].Shuttle)
	require.True(t, s.Atoms[1].Shuttle)
	require.InDelta(t, 2, a.Duration(), 1e-9)
}
