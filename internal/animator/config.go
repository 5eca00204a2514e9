package animator

import (
	"github.com/floeze/naviz/internal/parser"
	"github.com/floeze/naviz/internal/state"
)

// buildConfig assembles the static render configuration from the machine and
// style.
func (a *Animator) buildConfig(contentSize state.Position) *state.Config {
	visual := a.visual
	machine := a.machine

	var legendEntries []state.LegendSection
	if visual.Zone.Legend.Display {
		section := state.LegendSection{Name: visual.Zone.Legend.Title}
		for _, z := range machine.Zones {
			style, ok := visual.ZoneStyleFor(z.ID)
			if !ok || style.Name == "" {
				continue
			}
			c := style.Color
			section.Entries = append(section.Entries, state.LegendEntry{Text: style.Name, Color: &c})
		}
		legendEntries = append(legendEntries, section)
	}
	if visual.Operation.Legend.Display {
		section := state.LegendSection{Name: visual.Operation.Legend.Title}
		for _, op := range []parser.OperationStyle{visual.Operation.RZ, visual.Operation.RY, visual.Operation.CZ} {
			if op.Name == "" {
				continue
			}
			c := op.Color
			section.Entries = append(section.Entries, state.LegendEntry{Text: op.Name, Color: &c})
		}
		legendEntries = append(legendEntries, section)
	}
	if visual.Machine.Legend.Display {
		section := state.LegendSection{Name: visual.Machine.Legend.Title}
		entries := []struct {
			name  string
			color state.Color
		}{
			{visual.Machine.Trap.Name, visual.Atom.Trapped.Color},
			{visual.Machine.Shuttle.Name, visual.Atom.Shuttling.Color},
		}
		for _, e := range entries {
			if e.name == "" {
				continue
			}
			c := e.color
			section.Entries = append(section.Entries, state.LegendEntry{Text: e.name, Color: &c})
		}
		legendEntries = append(legendEntries, section)
	}

	trapPositions := make([]state.Position, 0, len(machine.Traps))
	for _, t := range machine.Traps {
		trapPositions = append(trapPositions, state.Position{X: t.Position.X, Y: t.Position.Y})
	}

	zones := make([]state.ZoneConfig, 0, len(machine.Zones))
	for _, z := range machine.Zones {
		line := state.LineConfig{}
		if style, ok := visual.ZoneStyleFor(z.ID); ok {
			line = state.LineConfig{
				Width:         style.Line.Thickness,
				SegmentLength: style.Line.Dash.Length,
				Duty:          style.Line.Dash.Duty,
				Color:         style.Color,
			}
		}
		zones = append(zones, state.ZoneConfig{
			Start: state.Position{X: z.From.X, Y: z.From.Y},
			Size:  state.Position{X: z.To.X - z.From.X, Y: z.To.Y - z.From.Y},
			Line:  line,
		})
	}

	gridLegend := state.GridLegendConfig{
		Step: state.Position{
			X: visual.Coordinate.Number.X.Distance,
			Y: visual.Coordinate.Number.Y.Distance,
		},
		Font:   toFont(visual.Coordinate.Number.Font),
		Labels: [2]string{visual.Coordinate.Axis.X, visual.Coordinate.Axis.Y},
	}
	if visual.Coordinate.Number.X.Position == parser.VTop {
		gridLegend.Position.V = state.VTop
	} else {
		gridLegend.Position.V = state.VBottom
	}
	if visual.Coordinate.Number.Y.Position == parser.HRight {
		gridLegend.Position.H = state.HRight
	} else {
		gridLegend.Position.H = state.HLeft
	}

	return &state.Config{
		Machine: state.MachineConfig{
			Grid: state.GridConfig{
				Step: state.Position{X: visual.Coordinate.Tick.X, Y: visual.Coordinate.Tick.Y},
				Line: state.LineConfig{
					Width:         visual.Coordinate.Tick.Line.Thickness,
					SegmentLength: visual.Coordinate.Tick.Line.Dash.Length,
					Duty:          visual.Coordinate.Tick.Line.Dash.Duty,
					Color:         visual.Coordinate.Tick.Color,
				},
				Legend: gridLegend,
			},
			Traps: state.TrapConfig{
				Positions: trapPositions,
				Radius:    visual.Machine.Trap.Radius,
				LineWidth: 1,
				Color:     visual.Machine.Trap.Color,
			},
			Zones: zones,
		},
		Atoms: state.AtomsConfig{
			Label: toFont(visual.Atom.Legend.Font),
			Shuttle: state.LineConfig{
				Width:         visual.Machine.Shuttle.Line.Thickness,
				SegmentLength: visual.Machine.Shuttle.Line.Dash.Length,
				Duty:          visual.Machine.Shuttle.Line.Dash.Duty,
				Color:         visual.Machine.Shuttle.Color,
			},
		},
		ContentExtent: [2]state.Position{{X: 0, Y: 0}, contentSize},
		Legend: state.LegendConfig{
			Font:              toFont(visual.Sidebar.Font),
			HeadingSkip:       visual.Sidebar.Font.Size * 1.6,
			EntrySkip:         visual.Sidebar.Font.Size * 1.4,
			ColorCircleRadius: visual.Sidebar.Font.Size / 2,
			ColorPadding:      visual.Sidebar.Font.Size / 2,
			Entries:           legendEntries,
		},
		Time: state.TimeConfig{
			Display: visual.Time.Display,
			Font:    toFont(visual.Time.Font),
		},
	}
}

func toFont(f parser.FontSpec) state.FontConfig {
	return state.FontConfig{Size: f.Size, Color: f.Color, Family: f.Family}
}
