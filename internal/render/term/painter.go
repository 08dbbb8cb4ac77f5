// Package term paints wheels onto a tcell screen. Terminal cells are roughly
// twice as tall as wide, so one row covers two horizontal units.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"reward_wheel/internal/spinner"
)

// Painter implements spinner.Painter on a tcell.Screen. Text is always drawn
// horizontally.
type Painter struct {
	screen tcell.Screen
	canvas float64

	// background per cell, so text keeps the color of what it is drawn over
	bg   []tcell.Color
	w, h int
}

// NewPainter maps a square canvas of canvasSize units onto screen.
func NewPainter(screen tcell.Screen, canvasSize float64) *Painter {
	return &Painter{screen: screen, canvas: canvasSize}
}

// grid returns units per column and the offsets that centre the canvas.
func (p *Painter) grid() (s float64, offX, offY int) {
	w, h := p.w, p.h
	if w <= 0 || h <= 0 {
		return 1, 0, 0
	}
	s = math.Max(p.canvas/float64(w), p.canvas/float64(2*h))
	offX = (w - int(math.Ceil(p.canvas/s))) / 2
	offY = (h - int(math.Ceil(p.canvas/(2*s)))) / 2
	return s, max(offX, 0), max(offY, 0)
}

func (p *Painter) cellCenter(col, row int) spinner.Point {
	s, offX, offY := p.grid()
	return spinner.Point{
		X: (float64(col-offX) + 0.5) * s,
		Y: (float64(row-offY) + 0.5) * 2 * s,
	}
}

func (p *Painter) toCell(pt spinner.Point) (col, row int) {
	s, offX, offY := p.grid()
	return int(math.Floor(pt.X/s)) + offX, int(math.Floor(pt.Y/(2*s))) + offY
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (p *Painter) paint(col, row int, c tcell.Color) {
	if col < 0 || row < 0 || col >= p.w || row >= p.h {
		return
	}
	p.bg[row*p.w+col] = c
	p.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(c))
}

// cells visits every cell whose centre lies inside the bounding box of a
// circle.
func (p *Painter) cells(c spinner.Point, radius float64, fn func(col, row int, pt spinner.Point)) {
	c0, r0 := p.toCell(spinner.Point{X: c.X - radius, Y: c.Y - radius})
	c1, r1 := p.toCell(spinner.Point{X: c.X + radius, Y: c.Y + radius})
	for row := max(r0, 0); row <= min(r1, p.h-1); row++ {
		for col := max(c0, 0); col <= min(c1, p.w-1); col++ {
			fn(col, row, p.cellCenter(col, row))
		}
	}
}

func (p *Painter) Clear(bg color.RGBA) {
	p.w, p.h = p.screen.Size()
	p.bg = make([]tcell.Color, p.w*p.h)
	for i := range p.bg {
		p.bg[i] = tcell.ColorDefault
	}
	p.screen.Clear()
	if bg.A == 0 {
		return
	}
	for row := 0; row < p.h; row++ {
		for col := 0; col < p.w; col++ {
			p.paint(col, row, toColor(bg))
		}
	}
}

func (p *Painter) FillWedge(c spinner.Point, radius, start, end float64, fill, _ color.RGBA, _ float64) {
	span := end - start
	tc := toColor(fill)
	p.cells(c, radius, func(col, row int, pt spinner.Point) {
		dx, dy := pt.X-c.X, pt.Y-c.Y
		if math.Hypot(dx, dy) > radius {
			return
		}
		if spinner.NormalizeAngle(math.Atan2(dy, dx)-start) < span {
			p.paint(col, row, tc)
		}
	})
}

func (p *Painter) FillCircle(c spinner.Point, radius float64, fill color.RGBA) {
	tc := toColor(fill)
	p.cells(c, radius, func(col, row int, pt spinner.Point) {
		if math.Hypot(pt.X-c.X, pt.Y-c.Y) <= radius {
			p.paint(col, row, tc)
		}
	})
}

func (p *Painter) StrokeCircle(c spinner.Point, radius float64, stroke color.RGBA, width float64) {
	s, _, _ := p.grid()
	half := math.Max(width/2, s/2)
	tc := toColor(stroke)
	p.cells(c, radius+half, func(col, row int, pt spinner.Point) {
		d := math.Hypot(pt.X-c.X, pt.Y-c.Y)
		if math.Abs(d-radius) <= half {
			p.paint(col, row, tc)
		}
	})
}

func (p *Painter) FillPolygon(points []spinner.Point, fill color.RGBA) {
	if len(points) < 3 {
		return
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range points[1:] {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	tc := toColor(fill)
	c0, r0 := p.toCell(spinner.Point{X: minX, Y: minY})
	c1, r1 := p.toCell(spinner.Point{X: maxX, Y: maxY})
	painted := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if insidePolygon(points, p.cellCenter(col, row)) {
				p.paint(col, row, tc)
				painted = true
			}
		}
	}
	// Small shapes can fall between cell centres; keep them visible.
	if !painted {
		col, row := p.toCell(points[len(points)-1])
		p.paint(col, row, tc)
	}
}

func (p *Painter) DrawText(text string, at spinner.Point, _ float64, fg color.RGBA, f spinner.Font) {
	runes := []rune(text)
	col, row := p.toCell(at)
	col -= len(runes) / 2
	if row < 0 || row >= p.h {
		return
	}
	for i, r := range runes {
		x := col + i
		if x < 0 || x >= p.w {
			continue
		}
		style := tcell.StyleDefault.Foreground(toColor(fg)).Background(p.bg[row*p.w+x]).Bold(f.Bold)
		p.screen.SetContent(x, row, r, nil, style)
	}
}

// Flush makes the frame visible.
func (p *Painter) Flush() {
	p.screen.Show()
}

// insidePolygon is the even-odd ray casting test.
func insidePolygon(poly []spinner.Point, pt spinner.Point) bool {
	in := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		j = i
	}
	return in
}
