// Package render builds 2D scenes from a config and a state, independent of
// the output backend. Backends implement Canvas; components emit primitives
// in screen coordinates through a viewport projection.
package render

import "github.com/floeze/naviz/internal/state"

// HAlign is the horizontal anchoring of a text.
type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
)

// VAlign is the vertical anchoring of a text.
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignCenter
	VAlignBottom
)

// LineSpec is a dashed line in screen coordinates. A zero SegmentLength
// draws a solid line.
type LineSpec struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	SegmentLength  float64
	Duty           float64
	Color          state.Color
}

// CircleSpec is a circle or ring. InnerRadius zero fills the circle.
type CircleSpec struct {
	X, Y        float64
	Radius      float64
	InnerRadius float64
	Color       state.Color
}

// RectSpec is a dashed rectangle outline.
type RectSpec struct {
	X, Y, W, H    float64
	Width         float64
	SegmentLength float64
	Duty          float64
	Color         state.Color
}

// TextSpec is a positioned text anchored according to its alignment.
type TextSpec struct {
	Text   string
	X, Y   float64
	Size   float64
	Color  state.Color
	Family string
	H      HAlign
	V      VAlign
}

// Canvas is a 2D drawing surface in screen coordinates with the origin at
// the top left.
type Canvas interface {
	Fill(c state.Color)
	Line(spec LineSpec)
	Circle(spec CircleSpec)
	Rect(spec RectSpec)
	Text(spec TextSpec)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Projection maps a source coordinate space onto a target screen rectangle.
type Projection struct {
	Source Rect
	Target Rect
}

// X projects a source x coordinate to the screen.
func (p Projection) X(x float64) float64 {
	return p.Target.X + (x-p.Source.X)*p.Target.W/p.Source.W
}

// Y projects a source y coordinate to the screen.
func (p Projection) Y(y float64) float64 {
	return p.Target.Y + (y-p.Source.Y)*p.Target.H/p.Source.H
}

// Len scales a source length to the screen using the horizontal scale.
func (p Projection) Len(l float64) float64 {
	return l * p.Target.W / p.Source.W
}

// Point projects a source position to the screen.
func (p Projection) Point(pos state.Position) (x, y float64) {
	return p.X(pos.X), p.Y(pos.Y)
}
