// Package raster paints wheels into images with fogleman/gg.
package raster

import (
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"reward_wheel/internal/spinner"
)

type fontKey struct {
	family string
	size   float64
}

// Painter implements spinner.Painter on top of a gg context.
type Painter struct {
	dc    *gg.Context
	faces map[fontKey]font.Face
	// families that failed to load; the built-in face is used for them
	missing map[fontKey]bool
}

// NewPainter creates a square canvas of the given edge in pixels.
func NewPainter(size int) *Painter {
	return &Painter{
		dc:      gg.NewContext(size, size),
		faces:   make(map[fontKey]font.Face),
		missing: make(map[fontKey]bool),
	}
}

func (p *Painter) Clear(bg color.RGBA) {
	p.dc.SetColor(bg)
	p.dc.Clear()
}

func (p *Painter) FillWedge(c spinner.Point, radius, start, end float64, fill, stroke color.RGBA, strokeWidth float64) {
	dc := p.dc
	dc.NewSubPath()
	dc.MoveTo(c.X, c.Y)
	dc.DrawArc(c.X, c.Y, radius, start, end)
	dc.LineTo(c.X, c.Y)
	dc.ClosePath()
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(stroke)
	dc.SetLineWidth(strokeWidth)
	dc.Stroke()
}

func (p *Painter) FillCircle(c spinner.Point, radius float64, fill color.RGBA) {
	p.dc.DrawCircle(c.X, c.Y, radius)
	p.dc.SetColor(fill)
	p.dc.Fill()
}

func (p *Painter) StrokeCircle(c spinner.Point, radius float64, stroke color.RGBA, width float64) {
	p.dc.DrawCircle(c.X, c.Y, radius)
	p.dc.SetColor(stroke)
	p.dc.SetLineWidth(width)
	p.dc.Stroke()
}

func (p *Painter) FillPolygon(points []spinner.Point, fill color.RGBA) {
	if len(points) == 0 {
		return
	}
	dc := p.dc
	dc.NewSubPath()
	dc.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		dc.LineTo(pt.X, pt.Y)
	}
	dc.ClosePath()
	dc.SetColor(fill)
	dc.Fill()
}

func (p *Painter) DrawText(text string, at spinner.Point, rotation float64, fg color.RGBA, f spinner.Font) {
	if text == "" {
		return
	}
	dc := p.dc
	dc.Push()
	defer dc.Pop()

	p.useFont(f)
	dc.SetColor(fg)
	if rotation != 0 && !math.IsNaN(rotation) {
		dc.RotateAbout(rotation, at.X, at.Y)
	}
	dc.DrawStringAnchored(text, at.X, at.Y, 0.5, 0.5)
}

// useFont switches to a TrueType face when Family points at a font file.
// Anything else keeps gg's built-in face.
func (p *Painter) useFont(f spinner.Font) {
	if !strings.HasSuffix(strings.ToLower(f.Family), ".ttf") {
		return
	}
	key := fontKey{family: f.Family, size: f.Size}
	if p.missing[key] {
		return
	}
	face, ok := p.faces[key]
	if !ok {
		var err error
		face, err = gg.LoadFontFace(f.Family, f.Size)
		if err != nil {
			p.missing[key] = true
			return
		}
		p.faces[key] = face
	}
	p.dc.SetFontFace(face)
}

func (p *Painter) Image() image.Image {
	return p.dc.Image()
}

func (p *Painter) EncodePNG(w io.Writer) error {
	return p.dc.EncodePNG(w)
}

// RenderPNG draws a wheel rotated by angle and writes it as PNG.
func RenderPNG(w io.Writer, cfg spinner.Config, angle float64, caption string) error {
	if err := cfg.ValidateDrawing(); err != nil {
		return err
	}
	r := spinner.NewRenderer(cfg)
	p := NewPainter(int(r.CanvasSize()))
	r.Draw(p, cfg.Segments, spinner.NormalizeAngle(angle), caption)
	return p.EncodePNG(w)
}
