package render

import "github.com/floeze/naviz/internal/state"

// DrawLegend draws the sidebar legend: a heading per section and its
// entries, each with an optional color circle. Spacing follows the config's
// skip values in the legend's source coordinate space.
func DrawLegend(c Canvas, p Projection, cfg *state.LegendConfig) {
	font := cfg.Font
	y := cfg.HeadingSkip

	for _, section := range cfg.Entries {
		c.Text(TextSpec{
			Text: section.Name, X: p.X(0), Y: p.Y(y),
			Size: p.Len(font.Size), Color: font.Color, Family: font.Family,
			H: HAlignLeft, V: VAlignCenter,
		})
		y += cfg.EntrySkip

		for _, entry := range section.Entries {
			if entry.Color != nil {
				c.Circle(CircleSpec{
					X:      p.X(cfg.ColorCircleRadius),
					Y:      p.Y(y),
					Radius: p.Len(cfg.ColorCircleRadius),
					Color:  *entry.Color,
				})
			}
			c.Text(TextSpec{
				Text: entry.Text,
				X:    p.X(2*cfg.ColorCircleRadius + cfg.ColorPadding),
				Y:    p.Y(y),
				Size: p.Len(font.Size), Color: font.Color, Family: font.Family,
				H: HAlignLeft, V: VAlignCenter,
			})
			y += cfg.EntrySkip
		}

		y += cfg.HeadingSkip - cfg.EntrySkip
	}
}
