package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testStyle = `
name: "Test Style"

viewport {
    color: #1e1e2e
}

atom {
    radius: 1.2
    trapped { color: #89b4fa }
    shuttling { color: #f9e2af }
    legend {
        font {
            size: 4
            color: #cdd6f4
            family: "sans-serif"
        }
        name {
            ^atom(\d+)$: "q$1"
        }
    }
}

zone {
    legend {
        display: true
        title: "Zones"
    }
    config ^interaction$ {
        name: "Interaction"
        color: #f38ba8
        line {
            thickness: 0.3
            dash {
                length: 2
                duty: 50%
            }
        }
    }
}

operation {
    legend { display: true  title: "Operations" }
    config {
        rz { name: "RZ"  color: #a6e3a180  radius: 120% }
        ry { name: "RY"  color: #89dceb80  radius: 120% }
        cz { name: "CZ"  color: #cba6f780  radius: 1.5 }
    }
}

machine {
    legend { display: true  title: "Machine" }
    trap {
        name: "Trap"
        radius: 1.5
        color: #6c7086
    }
    shuttle {
        name: "Shuttle"
        color: #585b70
        line {
            thickness: 0.2
            dash { length: 1  duty: 50% }
        }
    }
}

coordinate {
    tick {
        x: 8
        y: 8
        color: #45475a
        line { thickness: 0.2  dash { length: 1  duty: 60% } }
    }
    number {
        font { size: 3  color: #a6adc8  family: "sans-serif" }
        x { distance: 16  position: bottom }
        y { distance: 16  position: left }
    }
    axis {
        x: "x"
        y: "y"
    }
}

sidebar {
    font { size: 4  color: #cdd6f4  family: "sans-serif" }
}

time {
    display: true
    prefix: "t = "
    font { size: 5  color: #cdd6f4  family: "sans-serif" }
}
`

func TestParseVisual(t *testing.T) {
	items, err := ParseConfig(testStyle)
	require.NoError(t, err)

	v, err := ParseVisual(items)
	require.NoError(t, err)

	require.Equal(t, "Test Style", v.Name)
	require.Equal(t, Color{0x1e, 0x1e, 0x2e, 0xff}, v.Viewport.Color)

	require.Equal(t, 1.2, v.Atom.Radius)
	require.Equal(t, Color{0x89, 0xb4, 0xfa, 0xff}, v.Atom.Trapped.Color)
	require.Equal(t, Color{0xf9, 0xe2, 0xaf, 0xff}, v.Atom.Shuttling.Color)
	require.Equal(t, 4.0, v.Atom.Legend.Font.Size)
	require.Equal(t, "sans-serif", v.Atom.Legend.Font.Family)

	require.Len(t, v.Zone.Config, 1)
	require.Equal(t, "Interaction", v.Zone.Config[0].Name)
	require.Equal(t, 0.3, v.Zone.Config[0].Line.Thickness)
	require.Equal(t, 0.5, v.Zone.Config[0].Line.Dash.Duty)
	require.True(t, v.Zone.Legend.Display)
	require.Equal(t, "Zones", v.Zone.Legend.Title)

	require.Equal(t, "RZ", v.Operation.RZ.Name)
	require.Equal(t, Color{0xa6, 0xe3, 0xa1, 0x80}, v.Operation.RZ.Color)
	require.True(t, v.Operation.RZ.Radius.Percent)
	require.InDelta(t, 1.2, v.Operation.RZ.Radius.Value, 1e-9)
	require.False(t, v.Operation.CZ.Radius.Percent)
	require.Equal(t, 1.5, v.Operation.CZ.Radius.Value)

	require.Equal(t, "Trap", v.Machine.Trap.Name)
	require.Equal(t, 1.5, v.Machine.Trap.Radius)
	require.Equal(t, "Shuttle", v.Machine.Shuttle.Name)
	require.Equal(t, 0.2, v.Machine.Shuttle.Line.Thickness)

	require.Equal(t, 8.0, v.Coordinate.Tick.X)
	require.Equal(t, VBottom, v.Coordinate.Number.X.Position)
	require.Equal(t, HLeft, v.Coordinate.Number.Y.Position)
	require.Equal(t, "x", v.Coordinate.Axis.X)

	require.True(t, v.Time.Display)
	require.Equal(t, "t = ", v.Time.Prefix)
	require.Equal(t, 5.0, v.Time.Font.Size)
}

func TestOperationRadiusResolve(t *testing.T) {
	abs := OperationRadius{Value: 2.5}
	require.Equal(t, 2.5, abs.Resolve(1.0))

	rel := OperationRadius{Percent: true, Value: 1.2}
	require.InDelta(t, 1.44, rel.Resolve(1.2), 1e-9)
}

func TestAtomName(t *testing.T) {
	items, err := ParseConfig(testStyle)
	require.NoError(t, err)
	v, err := ParseVisual(items)
	require.NoError(t, err)

	require.Equal(t, "q12", v.AtomName("atom12"))
	require.Equal(t, "", v.AtomName("other"))
}

func TestZoneStyleFor(t *testing.T) {
	items, err := ParseConfig(testStyle)
	require.NoError(t, err)
	v, err := ParseVisual(items)
	require.NoError(t, err)

	s, ok := v.ZoneStyleFor("interaction")
	require.True(t, ok)
	require.Equal(t, "Interaction", s.Name)

	_, ok = v.ZoneStyleFor("storage")
	require.False(t, ok)
}
