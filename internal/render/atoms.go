package render

import "github.com/floeze/naviz/internal/state"

// DrawAtoms draws the atom circles, their labels, and the shuttle crosshair
// lines for atoms that are currently shuttling.
func DrawAtoms(c Canvas, p Projection, cfg *state.AtomsConfig, atoms []state.AtomState) {
	src := p.Source

	for _, a := range atoms {
		if !a.Shuttle {
			continue
		}
		x, y := p.Point(a.Position)
		shuttle := LineSpec{
			Width:         p.Len(cfg.Shuttle.Width),
			SegmentLength: p.Len(cfg.Shuttle.SegmentLength),
			Duty:          cfg.Shuttle.Duty,
			Color:         cfg.Shuttle.Color,
		}
		vertical := shuttle
		vertical.X1, vertical.Y1 = x, p.Y(src.Y)
		vertical.X2, vertical.Y2 = x, p.Y(src.Y+src.H)
		c.Line(vertical)
		horizontal := shuttle
		horizontal.X1, horizontal.Y1 = p.X(src.X), y
		horizontal.X2, horizontal.Y2 = p.X(src.X+src.W), y
		c.Line(horizontal)
	}

	for _, a := range atoms {
		x, y := p.Point(a.Position)
		c.Circle(CircleSpec{X: x, Y: y, Radius: p.Len(a.Size), Color: a.Color})
	}

	for _, a := range atoms {
		if a.Label == "" {
			continue
		}
		x, y := p.Point(a.Position)
		c.Text(TextSpec{
			Text: a.Label, X: x, Y: y,
			Size:   p.Len(cfg.Label.Size),
			Color:  cfg.Label.Color,
			Family: cfg.Label.Family,
			H:      HAlignCenter, V: VAlignCenter,
		})
	}
}
