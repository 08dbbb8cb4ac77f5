package spinner

import (
	"math"
)

const (
	twoPi = 2 * math.Pi

	// PointerAngle is the fixed screen angle of the pointer (top of the wheel,
	// y axis pointing down).
	PointerAngle = 3 * math.Pi / 2

	labelRadius   = 0.62
	labelMaxRunes = 14
	labelEllipsis = "..."
	hubRadius     = 0.17
)

// Point is a position on the drawing surface.
type Point struct {
	X, Y float64
}

// Wedge is the layout of one segment for a given rotation.
type Wedge struct {
	Index         int
	Start, End    float64
	Bisector      float64
	Label         Point
	LabelRotation float64
}

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}

// WedgeSpan is the angular width every segment gets, regardless of weight.
func WedgeSpan(n int) float64 {
	return twoPi / float64(n)
}

// Layout computes the wedges of an n-segment wheel centred at c with the given
// radius, rotated by angle.
func Layout(n int, angle float64, c Point, radius float64) []Wedge {
	if n <= 0 {
		return nil
	}
	span := WedgeSpan(n)
	wedges := make([]Wedge, n)
	for i := range wedges {
		start := angle + span*float64(i)
		end := start + span
		mid := (start + end) / 2
		wedges[i] = Wedge{
			Index:    i,
			Start:    start,
			End:      end,
			Bisector: mid,
			Label: Point{
				X: c.X + math.Cos(mid)*radius*labelRadius,
				Y: c.Y + math.Sin(mid)*radius*labelRadius,
			},
			LabelRotation: uprightRotation(mid),
		}
	}
	return wedges
}

// uprightRotation aligns text with the bisector but keeps it readable left to
// right on the left half of the wheel.
func uprightRotation(bisector float64) float64 {
	a := NormalizeAngle(bisector)
	if a > math.Pi/2 && a < 3*math.Pi/2 {
		a -= math.Pi
	}
	return a
}

// SegmentUnderPointer returns the index of the wedge the fixed pointer sits on
// when the wheel is rotated by angle.
func SegmentUnderPointer(angle float64, n int) int {
	if n <= 0 {
		return -1
	}
	rel := NormalizeAngle(PointerAngle - angle)
	i := int(math.Floor(rel / WedgeSpan(n)))
	if i >= n {
		i = n - 1
	}
	return i
}

// TruncateLabel shortens long segment names so they stay inside the wedge.
func TruncateLabel(name string) string {
	r := []rune(name)
	if len(r) <= labelMaxRunes {
		return name
	}
	return string(r[:labelMaxRunes]) + labelEllipsis
}

// PointerTriangle returns the pointer polygon at the top of a wheel centred at
// c with the given radius. It points down into the rim.
func PointerTriangle(c Point, radius float64) []Point {
	w := radius * 0.07
	tip := c.Y - radius + w*0.8
	base := c.Y - radius - w*1.2
	return []Point{
		{X: c.X - w, Y: base},
		{X: c.X + w, Y: base},
		{X: c.X, Y: tip},
	}
}

// HubRadius is the radius of the centre button.
func HubRadius(radius float64) float64 {
	return radius * hubRadius
}
