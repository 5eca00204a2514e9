package render

import "github.com/floeze/naviz/internal/state"

// DrawTime draws the current time centered in the time bar.
func DrawTime(c Canvas, p Projection, cfg *state.TimeConfig, time string) {
	c.Text(TextSpec{
		Text:   time,
		X:      p.X(p.Source.W / 2),
		Y:      p.Y(p.Source.H / 2),
		Size:   p.Len(cfg.Font.Size),
		Color:  cfg.Font.Color,
		Family: cfg.Font.Family,
		H:      HAlignCenter, V: VAlignCenter,
	})
}
