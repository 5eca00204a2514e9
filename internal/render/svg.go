package render

import (
	"fmt"
	"strings"

	"github.com/floeze/naviz/internal/state"
)

// SVGCanvas renders primitives into an SVG document.
type SVGCanvas struct {
	width  float64
	height float64
	sb     strings.Builder
}

// NewSVGCanvas creates a canvas for an SVG of the given pixel size.
func NewSVGCanvas(width, height float64) *SVGCanvas {
	c := &SVGCanvas{width: width, height: height}
	c.sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, width, height, width, height))
	return c
}

// String finalizes and returns the SVG document.
func (c *SVGCanvas) String() string {
	return c.sb.String() + "</svg>\n"
}

func svgColor(col state.Color) (string, float64) {
	return fmt.Sprintf("#%02x%02x%02x", col[0], col[1], col[2]), float64(col[3]) / 255
}

func svgDash(segmentLength, duty float64) string {
	if segmentLength <= 0 || duty <= 0 || duty >= 1 {
		return ""
	}
	on := segmentLength * duty
	off := segmentLength - on
	return fmt.Sprintf(` stroke-dasharray="%.2f %.2f"`, on, off)
}

func (c *SVGCanvas) Fill(col state.Color) {
	fill, opacity := svgColor(col)
	c.sb.WriteString(fmt.Sprintf("<rect width=\"100%%\" height=\"100%%\" fill=\"%s\" fill-opacity=\"%.3f\"/>\n", fill, opacity))
}

func (c *SVGCanvas) Line(spec LineSpec) {
	stroke, opacity := svgColor(spec.Color)
	c.sb.WriteString(fmt.Sprintf(
		"<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-opacity=\"%.3f\" stroke-width=\"%.2f\"%s/>\n",
		spec.X1, spec.Y1, spec.X2, spec.Y2, stroke, opacity, spec.Width, svgDash(spec.SegmentLength, spec.Duty)))
}

func (c *SVGCanvas) Circle(spec CircleSpec) {
	fill, opacity := svgColor(spec.Color)
	if spec.InnerRadius > 0 {
		width := spec.Radius - spec.InnerRadius
		r := spec.InnerRadius + width/2
		c.sb.WriteString(fmt.Sprintf(
			"<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-opacity=\"%.3f\" stroke-width=\"%.2f\"/>\n",
			spec.X, spec.Y, r, fill, opacity, width))
		return
	}
	c.sb.WriteString(fmt.Sprintf(
		"<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" fill-opacity=\"%.3f\"/>\n",
		spec.X, spec.Y, spec.Radius, fill, opacity))
}

func (c *SVGCanvas) Rect(spec RectSpec) {
	stroke, opacity := svgColor(spec.Color)
	c.sb.WriteString(fmt.Sprintf(
		"<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-opacity=\"%.3f\" stroke-width=\"%.2f\"%s/>\n",
		spec.X, spec.Y, spec.W, spec.H, stroke, opacity, spec.Width, svgDash(spec.SegmentLength, spec.Duty)))
}

var svgAnchor = map[HAlign]string{
	HAlignLeft:   "start",
	HAlignCenter: "middle",
	HAlignRight:  "end",
}

var svgBaseline = map[VAlign]string{
	VAlignTop:    "hanging",
	VAlignCenter: "central",
	VAlignBottom: "text-after-edge",
}

func (c *SVGCanvas) Text(spec TextSpec) {
	fill, opacity := svgColor(spec.Color)
	c.sb.WriteString(fmt.Sprintf(
		"<text x=\"%.2f\" y=\"%.2f\" font-size=\"%.2f\" font-family=\"%s\" fill=\"%s\" fill-opacity=\"%.3f\" text-anchor=\"%s\" dominant-baseline=\"%s\">%s</text>\n",
		spec.X, spec.Y, spec.Size, spec.Family, fill, opacity,
		svgAnchor[spec.H], svgBaseline[spec.V], escapeXML(spec.Text)))
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
