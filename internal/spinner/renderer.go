package spinner

import (
	"image/color"
	"math"
)

// Font describes the label typeface. Family may be a path to a TrueType file;
// painters fall back to their built-in face when it cannot be loaded.
type Font struct {
	Family string
	Size   float64
	Bold   bool
}

// Painter is the 2D surface the renderer draws on. Angles are in radians,
// clockwise, with the y axis pointing down.
type Painter interface {
	Clear(bg color.RGBA)
	FillWedge(c Point, radius, start, end float64, fill, stroke color.RGBA, strokeWidth float64)
	FillCircle(c Point, radius float64, fill color.RGBA)
	StrokeCircle(c Point, radius float64, stroke color.RGBA, width float64)
	FillPolygon(points []Point, fill color.RGBA)
	DrawText(text string, at Point, rotation float64, fg color.RGBA, font Font)
}

// Renderer paints a wheel from its configuration. It keeps no state between
// calls.
type Renderer struct {
	cfg Config
}

func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg.withDefaults()}
}

// Center is the wheel centre on a canvas of CanvasSize.
func (r *Renderer) Center() Point {
	half := r.CanvasSize() / 2
	return Point{X: half, Y: half}
}

// CanvasSize is the edge of the square surface the wheel needs, including the
// pointer and the caption below the rim.
func (r *Renderer) CanvasSize() float64 {
	return math.Ceil(2 * (r.cfg.Size + r.margin()))
}

func (r *Renderer) margin() float64 {
	return r.cfg.Size*0.15 + r.cfg.OutlineWidth
}

// Draw paints the whole wheel rotated by angle. caption is printed under the
// wheel when not empty.
func (r *Renderer) Draw(p Painter, segments []Segment, angle float64, caption string) {
	cfg := r.cfg
	c := r.Center()
	primary := MustParseColor(cfg.PrimaryColor)
	contrast := MustParseColor(cfg.ContrastColor)

	p.Clear(color.RGBA{A: 0})

	labelFont := Font{Family: cfg.FontFamily, Size: cfg.FontSize, Bold: true}
	for _, w := range Layout(len(segments), angle, c, cfg.Size) {
		s := segments[w.Index]
		p.FillWedge(c, cfg.Size, w.Start, w.End, MustParseColor(s.Color), primary, 1)
		p.DrawText(TruncateLabel(s.Name), w.Label, w.LabelRotation, contrast, labelFont)
	}

	p.StrokeCircle(c, cfg.Size, primary, cfg.OutlineWidth)

	hub := HubRadius(cfg.Size)
	p.FillCircle(c, hub, primary)
	p.StrokeCircle(c, hub, contrast, cfg.OutlineWidth)
	p.DrawText(cfg.ButtonText, c, 0, contrast, labelFont)

	p.FillPolygon(PointerTriangle(c, cfg.Size), contrast)

	if caption != "" {
		at := Point{X: c.X, Y: c.Y + cfg.Size + r.margin()/2}
		p.DrawText(caption, at, 0, primary, Font{Family: cfg.FontFamily, Size: cfg.FontSize * 1.5, Bold: true})
	}
}
