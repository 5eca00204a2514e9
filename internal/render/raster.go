package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/floeze/naviz/internal/state"
)

// Control point offset for approximating quarter circles with cubic curves.
const circleKappa = 0.5522847498

// RasterCanvas rasterizes primitives into an RGBA image. Text is drawn with
// the embedded Go Regular face; the configured font family is ignored.
type RasterCanvas struct {
	img   *image.RGBA
	faces map[float64]font.Face
}

var rasterFont *opentype.Font

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic("render: parsing embedded font: " + err.Error())
	}
	rasterFont = f
}

// NewRasterCanvas creates a canvas backed by a fresh RGBA image.
func NewRasterCanvas(width, height int) *RasterCanvas {
	return &RasterCanvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		faces: make(map[float64]font.Face),
	}
}

// Image returns the backing image.
func (c *RasterCanvas) Image() *image.RGBA { return c.img }

func rgba(col state.Color) color.RGBA {
	// Premultiply for image/draw.
	a := uint32(col[3])
	return color.RGBA{
		R: uint8(uint32(col[0]) * a / 255),
		G: uint8(uint32(col[1]) * a / 255),
		B: uint8(uint32(col[2]) * a / 255),
		A: col[3],
	}
}

func (c *RasterCanvas) Fill(col state.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(rgba(col)), image.Point{}, draw.Over)
}

func (c *RasterCanvas) rasterize(r *vector.Rasterizer, col state.Color) {
	r.Draw(c.img, c.img.Bounds(), image.NewUniform(rgba(col)), image.Point{})
}

// strokeSegment adds a solid line segment as a filled quad.
func strokeSegment(r *vector.Rasterizer, x1, y1, x2, y2, width float64) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Perpendicular half-width offset.
	nx := -dy / length * width / 2
	ny := dx / length * width / 2
	r.MoveTo(float32(x1+nx), float32(y1+ny))
	r.LineTo(float32(x2+nx), float32(y2+ny))
	r.LineTo(float32(x2-nx), float32(y2-ny))
	r.LineTo(float32(x1-nx), float32(y1-ny))
	r.ClosePath()
}

// dashSegments splits a line into dash segments. A zero segment length
// yields the whole line.
func dashSegments(x1, y1, x2, y2, segmentLength, duty float64) [][4]float64 {
	length := math.Hypot(x2-x1, y2-y1)
	if segmentLength <= 0 || duty <= 0 || duty >= 1 || length == 0 {
		return [][4]float64{{x1, y1, x2, y2}}
	}
	ux, uy := (x2-x1)/length, (y2-y1)/length
	on := segmentLength * duty

	var segs [][4]float64
	for start := 0.0; start < length; start += segmentLength {
		end := start + on
		if end > length {
			end = length
		}
		segs = append(segs, [4]float64{
			x1 + ux*start, y1 + uy*start,
			x1 + ux*end, y1 + uy*end,
		})
	}
	return segs
}

func (c *RasterCanvas) Line(spec LineSpec) {
	r := vector.NewRasterizer(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	for _, s := range dashSegments(spec.X1, spec.Y1, spec.X2, spec.Y2, spec.SegmentLength, spec.Duty) {
		strokeSegment(r, s[0], s[1], s[2], s[3], spec.Width)
	}
	c.rasterize(r, spec.Color)
}

// addCircle appends a circle path. Winding determines fill or hole.
func addCircle(r *vector.Rasterizer, x, y, radius float64, clockwise bool) {
	k := radius * circleKappa
	fx := func(v float64) float32 { return float32(v) }

	if clockwise {
		r.MoveTo(fx(x+radius), fx(y))
		r.CubeTo(fx(x+radius), fx(y+k), fx(x+k), fx(y+radius), fx(x), fx(y+radius))
		r.CubeTo(fx(x-k), fx(y+radius), fx(x-radius), fx(y+k), fx(x-radius), fx(y))
		r.CubeTo(fx(x-radius), fx(y-k), fx(x-k), fx(y-radius), fx(x), fx(y-radius))
		r.CubeTo(fx(x+k), fx(y-radius), fx(x+radius), fx(y-k), fx(x+radius), fx(y))
	} else {
		r.MoveTo(fx(x+radius), fx(y))
		r.CubeTo(fx(x+radius), fx(y-k), fx(x+k), fx(y-radius), fx(x), fx(y-radius))
		r.CubeTo(fx(x-k), fx(y-radius), fx(x-radius), fx(y-k), fx(x-radius), fx(y))
		r.CubeTo(fx(x-radius), fx(y+k), fx(x-k), fx(y+radius), fx(x), fx(y+radius))
		r.CubeTo(fx(x+k), fx(y+radius), fx(x+radius), fx(y+k), fx(x+radius), fx(y))
	}
	r.ClosePath()
}

func (c *RasterCanvas) Circle(spec CircleSpec) {
	r := vector.NewRasterizer(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	addCircle(r, spec.X, spec.Y, spec.Radius, true)
	if spec.InnerRadius > 0 {
		addCircle(r, spec.X, spec.Y, spec.InnerRadius, false)
	}
	c.rasterize(r, spec.Color)
}

func (c *RasterCanvas) Rect(spec RectSpec) {
	corners := [4][4]float64{
		{spec.X, spec.Y, spec.X + spec.W, spec.Y},
		{spec.X + spec.W, spec.Y, spec.X + spec.W, spec.Y + spec.H},
		{spec.X + spec.W, spec.Y + spec.H, spec.X, spec.Y + spec.H},
		{spec.X, spec.Y + spec.H, spec.X, spec.Y},
	}
	r := vector.NewRasterizer(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	for _, edge := range corners {
		for _, s := range dashSegments(edge[0], edge[1], edge[2], edge[3], spec.SegmentLength, spec.Duty) {
			strokeSegment(r, s[0], s[1], s[2], s[3], spec.Width)
		}
	}
	c.rasterize(r, spec.Color)
}

func (c *RasterCanvas) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(rasterFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic("render: creating font face: " + err.Error())
	}
	c.faces[size] = f
	return f
}

func (c *RasterCanvas) Text(spec TextSpec) {
	if spec.Size <= 0 || spec.Text == "" {
		return
	}
	face := c.face(spec.Size)
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(rgba(spec.Color)),
		Face: face,
	}

	width := d.MeasureString(spec.Text)
	x := fixed.Int26_6(spec.X * 64)
	switch spec.H {
	case HAlignCenter:
		x -= width / 2
	case HAlignRight:
		x -= width
	}

	metrics := face.Metrics()
	y := fixed.Int26_6(spec.Y * 64)
	switch spec.V {
	case VAlignTop:
		y += metrics.Ascent
	case VAlignCenter:
		y += (metrics.Ascent - metrics.Descent) / 2
	}

	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(spec.Text)
}
