// Package state holds the render-facing data model: the static visual
// configuration derived from a machine and a style, and the per-frame state
// of all atoms.
package state

// Color is an 8-bit RGBA color, non-premultiplied.
type Color = [4]uint8

// Position is a point in machine coordinates.
type Position struct {
	X, Y float64
}

// FontConfig describes text rendering for one element class.
type FontConfig struct {
	Size   float64
	Color  Color
	Family string
}

// LineConfig describes a dashed line: stroke width, dash segment length, and
// the on-fraction of each segment.
type LineConfig struct {
	Width         float64
	SegmentLength float64
	Duty          float64
	Color         Color
}

// VPosition places the x-axis numbers above or below the content.
type VPosition int

const (
	VTop VPosition = iota
	VBottom
)

// HPosition places the y-axis numbers left or right of the content.
type HPosition int

const (
	HLeft HPosition = iota
	HRight
)

// GridLegendConfig configures the axis numbers and labels of the grid.
type GridLegendConfig struct {
	Step     Position
	Font     FontConfig
	Labels   [2]string
	Position struct {
		V VPosition
		H HPosition
	}
}

// GridConfig configures the background coordinate grid.
type GridConfig struct {
	Step   Position
	Line   LineConfig
	Legend GridLegendConfig
}

// TrapConfig configures the static trap markers.
type TrapConfig struct {
	Positions []Position
	Radius    float64
	LineWidth float64
	Color     Color
}

// ZoneConfig is one rectangular zone with its border style.
type ZoneConfig struct {
	Start Position
	Size  Position
	Line  LineConfig
}

// MachineConfig is the static machine geometry with its display styles.
type MachineConfig struct {
	Grid  GridConfig
	Traps TrapConfig
	Zones []ZoneConfig
}

// AtomsConfig configures atom labels and the shuttle crosshair lines.
type AtomsConfig struct {
	Label   FontConfig
	Shuttle LineConfig
}

// LegendEntry is one line of a legend section. Color is optional.
type LegendEntry struct {
	Text  string
	Color *Color
}

// LegendSection is a titled group of legend entries.
type LegendSection struct {
	Name    string
	Entries []LegendEntry
}

// LegendConfig configures the sidebar legend. The skip values are baseline
// distances, derived from the font size.
type LegendConfig struct {
	Font              FontConfig
	HeadingSkip       float64
	EntrySkip         float64
	ColorCircleRadius float64
	ColorPadding      float64
	Entries           []LegendSection
}

// TimeConfig configures the time display.
type TimeConfig struct {
	Display bool
	Font    FontConfig
}

// Config is the full static render configuration.
type Config struct {
	Machine       MachineConfig
	Atoms         AtomsConfig
	ContentExtent [2]Position
	Legend        LegendConfig
	Time          TimeConfig
}

// DisplayTime reports whether the time bar should be laid out.
func (c *Config) DisplayTime() bool {
	return c.Time.Display
}

// DisplaySidebar reports whether the legend sidebar should be laid out.
func (c *Config) DisplaySidebar() bool {
	for _, s := range c.Legend.Entries {
		if s.Name != "" || len(s.Entries) > 0 {
			return true
		}
	}
	return false
}
