package render

import "github.com/floeze/naviz/internal/state"

// Renderer draws full frames. With Zen set, only the content viewport is
// rendered regardless of the config.
type Renderer struct {
	Zen bool
}

// Draw renders one frame onto the canvas: background, machine, atoms, then
// the legend and time bar if laid out.
func (r *Renderer) Draw(c Canvas, width, height float64, background state.Color, cfg *state.Config, s *state.State) {
	layout := NewLayout(width, height, cfg, r.Zen)

	c.Fill(background)
	DrawMachine(c, layout.Content, &cfg.Machine)
	DrawAtoms(c, layout.Content, &cfg.Atoms, s.Atoms)
	if layout.Legend != nil {
		DrawLegend(c, *layout.Legend, &cfg.Legend)
	}
	if layout.Time != nil {
		DrawTime(c, *layout.Time, &cfg.Time, s.Time)
	}
}
