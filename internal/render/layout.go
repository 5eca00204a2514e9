package render

import "github.com/floeze/naviz/internal/state"

// Vertical padding around the content viewport in pixels.
const contentPaddingY = 36

// Height of the legend sidebar's source coordinate space. Legend font sizes
// are relative to this.
const legendHeight = 1024

// Fraction of the screen width reserved for the legend sidebar.
const legendWidthFraction = 0.25

// Layout splits the screen into the content viewport and the optional legend
// sidebar and time bar.
type Layout struct {
	Content Projection
	Legend  *Projection
	Time    *Projection
}

// NewLayout computes the layout for a screen size. With zen set, or when the
// config displays neither legend nor time, only the content is laid out.
func NewLayout(width, height float64, cfg *state.Config, zen bool) Layout {
	source := contentSource(cfg)

	if zen || (!cfg.DisplayTime() && !cfg.DisplaySidebar()) {
		return Layout{
			Content: Projection{
				Source: source,
				Target: fitRect(source, Rect{0, 0, width, height}, contentPaddingY),
			},
		}
	}

	timeH := height * cfg.Time.Font.Size * 1.2 / legendHeight
	legendW := width * legendWidthFraction
	mainH := height - timeH

	legend := Projection{
		Source: Rect{0, 0, legendHeight * legendW / mainH, legendHeight},
		Target: Rect{width - legendW, 0, legendW, mainH},
	}
	timeSourceH := cfg.Time.Font.Size * 1.2
	timeBar := Projection{
		Source: Rect{0, 0, timeSourceH * width / timeH, timeSourceH},
		Target: Rect{0, mainH, width, timeH},
	}

	return Layout{
		Content: Projection{
			Source: source,
			Target: fitRect(source, Rect{0, 0, width - legendW, mainH}, contentPaddingY),
		},
		Legend: &legend,
		Time:   &timeBar,
	}
}

// contentSource derives the content coordinate space from the extent,
// guarding against degenerate sizes.
func contentSource(cfg *state.Config) Rect {
	min, max := cfg.ContentExtent[0], cfg.ContentExtent[1]
	w := max.X - min.X
	h := max.Y - min.Y
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Rect{min.X, min.Y, w, h}
}

// fitRect fits source into area preserving the aspect ratio, keeping at
// least padY free above and below, centered.
func fitRect(source, area Rect, padY float64) Rect {
	availW := area.W
	availH := area.H - 2*padY
	if availH <= 0 {
		availH = area.H
	}

	scale := availW / source.W
	if s := availH / source.H; s < scale {
		scale = s
	}

	w := source.W * scale
	h := source.H * scale
	return Rect{
		X: area.X + (area.W-w)/2,
		Y: area.Y + (area.H-h)/2,
		W: w,
		H: h,
	}
}
