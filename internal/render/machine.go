package render

import (
	"math"
	"strconv"

	"github.com/floeze/naviz/internal/state"
)

// Padding between the grid and the axis numbers and labels, in pixels.
const labelPadding = 12

// DrawMachine draws the static machine background: the coordinate grid with
// its numbers and axis labels, the trap markers, and the zone outlines.
func DrawMachine(c Canvas, p Projection, cfg *state.MachineConfig) {
	drawGrid(c, p, &cfg.Grid)
	drawGridLegend(c, p, &cfg.Grid.Legend)

	for _, pos := range cfg.Traps.Positions {
		x, y := p.Point(pos)
		c.Circle(CircleSpec{
			X:           x,
			Y:           y,
			Radius:      p.Len(cfg.Traps.Radius),
			InnerRadius: p.Len(cfg.Traps.Radius - cfg.Traps.LineWidth),
			Color:       cfg.Traps.Color,
		})
	}

	for _, z := range cfg.Zones {
		x, y := p.Point(z.Start)
		c.Rect(RectSpec{
			X:             x,
			Y:             y,
			W:             p.Len(z.Size.X),
			H:             p.Len(z.Size.Y),
			Width:         p.Len(z.Line.Width),
			SegmentLength: p.Len(z.Line.SegmentLength),
			Duty:          z.Line.Duty,
			Color:         z.Line.Color,
		})
	}
}

func drawGrid(c Canvas, p Projection, grid *state.GridConfig) {
	src := p.Source
	for _, x := range steps(src.X, src.X+src.W, grid.Step.X) {
		c.Line(LineSpec{
			X1: p.X(x), Y1: p.Y(src.Y),
			X2: p.X(x), Y2: p.Y(src.Y + src.H),
			Width:         p.Len(grid.Line.Width),
			SegmentLength: p.Len(grid.Line.SegmentLength),
			Duty:          grid.Line.Duty,
			Color:         grid.Line.Color,
		})
	}
	for _, y := range steps(src.Y, src.Y+src.H, grid.Step.Y) {
		c.Line(LineSpec{
			X1: p.X(src.X), Y1: p.Y(y),
			X2: p.X(src.X + src.W), Y2: p.Y(y),
			Width:         p.Len(grid.Line.Width),
			SegmentLength: p.Len(grid.Line.SegmentLength),
			Duty:          grid.Line.Duty,
			Color:         grid.Line.Color,
		})
	}
}

func drawGridLegend(c Canvas, p Projection, legend *state.GridLegendConfig) {
	src := p.Source
	size := p.Len(legend.Font.Size)

	numberY := p.Y(src.Y+src.H) + labelPadding
	numberV := VAlignTop
	if legend.Position.V == state.VTop {
		numberY = p.Y(src.Y) - labelPadding
		numberV = VAlignBottom
	}
	for _, x := range steps(src.X, src.X+src.W, legend.Step.X) {
		c.Text(TextSpec{
			Text: formatCoord(x), X: p.X(x), Y: numberY,
			Size: size, Color: legend.Font.Color, Family: legend.Font.Family,
			H: HAlignCenter, V: numberV,
		})
	}

	numberX := p.X(src.X) - labelPadding
	numberH := HAlignRight
	if legend.Position.H == state.HRight {
		numberX = p.X(src.X+src.W) + labelPadding
		numberH = HAlignLeft
	}
	for _, y := range steps(src.Y, src.Y+src.H, legend.Step.Y) {
		c.Text(TextSpec{
			Text: formatCoord(y), X: numberX, Y: p.Y(y),
			Size: size, Color: legend.Font.Color, Family: legend.Font.Family,
			H: numberH, V: VAlignCenter,
		})
	}

	// Axis labels sit on the side opposite the numbers.
	labelX := p.X(src.X+src.W) + labelPadding
	labelH := HAlignLeft
	if legend.Position.H == state.HRight {
		labelX = p.X(src.X) - labelPadding
		labelH = HAlignRight
	}
	c.Text(TextSpec{
		Text: legend.Labels[0], X: labelX, Y: numberY,
		Size: size, Color: legend.Font.Color, Family: legend.Font.Family,
		H: labelH, V: numberV,
	})
	labelY := p.Y(src.Y) - labelPadding
	labelV := VAlignBottom
	if legend.Position.V == state.VTop {
		labelY = p.Y(src.Y+src.H) + labelPadding
		labelV = VAlignTop
	}
	c.Text(TextSpec{
		Text: legend.Labels[1], X: numberX, Y: labelY,
		Size: size, Color: legend.Font.Color, Family: legend.Font.Family,
		H: numberH, V: labelV,
	})
}

// steps returns the grid positions in [from, to] aligned to multiples of
// step.
func steps(from, to, step float64) []float64 {
	if step <= 0 || to < from {
		return nil
	}
	var out []float64
	for x := math.Ceil(from/step) * step; x <= to+1e-9; x += step {
		out = append(out, x)
	}
	return out
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
