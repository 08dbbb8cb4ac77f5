package term

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reward_wheel/internal/spinner"
)

type cell struct {
	r     rune
	style tcell.Style
}

// mockScreen records SetContent calls; everything else panics through the
// nil embedded interface.
type mockScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]cell
	shows         int
}

func newMockScreen(w, h int) *mockScreen {
	return &mockScreen{width: w, height: h, cells: map[[2]int]cell{}}
}

func (m *mockScreen) Size() (int, int) { return m.width, m.height }
func (m *mockScreen) Clear()           { m.cells = map[[2]int]cell{} }
func (m *mockScreen) Show()            { m.shows++ }
func (m *mockScreen) SetContent(x, y int, mainc rune, _ []rune, style tcell.Style) {
	m.cells[[2]int{x, y}] = cell{r: mainc, style: style}
}

func (m *mockScreen) bgAt(x, y int) tcell.Color {
	_, bg, _ := m.cells[[2]int{x, y}].style.Decompose()
	return bg
}

func drawTwoSegments(t *testing.T, screen *mockScreen, angle float64) (*Painter, *spinner.Renderer) {
	t.Helper()
	cfg := spinner.Config{
		Segments: []spinner.Segment{
			{Name: "Red", Color: "#cc0000", Probability: 50},
			{Name: "Blue", Color: "#0000cc", Probability: 50},
		},
		Size: 100,
	}
	require.NoError(t, cfg.ValidateDrawing())
	r := spinner.NewRenderer(cfg)
	p := NewPainter(screen, r.CanvasSize())
	r.Draw(p, cfg.Segments, angle, "")
	return p, r
}

func TestPainter_FillsWedgesByAngle(t *testing.T) {
	screen := newMockScreen(80, 40)
	p, r := drawTwoSegments(t, screen, 0)
	c := r.Center()

	red := tcell.NewRGBColor(0xcc, 0, 0)
	blue := tcell.NewRGBColor(0, 0, 0xcc)

	col, row := p.toCell(spinner.Point{X: c.X + 45*math.Cos(math.Pi/4), Y: c.Y + 45*math.Sin(math.Pi/4)})
	assert.Equal(t, red, screen.bgAt(col, row))

	col, row = p.toCell(spinner.Point{X: c.X + 45*math.Cos(5*math.Pi/4), Y: c.Y + 45*math.Sin(5*math.Pi/4)})
	assert.Equal(t, blue, screen.bgAt(col, row))
}

func TestPainter_TextKeepsBackground(t *testing.T) {
	screen := newMockScreen(80, 40)
	p, r := drawTwoSegments(t, screen, 0)

	col, row := p.toCell(r.Center())
	// "SPIN" is centred on the hub.
	found := false
	for x := col - 3; x <= col+3; x++ {
		if screen.cells[[2]int{x, row}].r == 'S' {
			found = true
			fg, bg, attr := screen.cells[[2]int{x, row}].style.Decompose()
			assert.Equal(t, tcell.NewRGBColor(255, 255, 255), fg)
			assert.Equal(t, tcell.NewRGBColor(0, 0, 0), bg)
			assert.NotZero(t, attr&tcell.AttrBold)
		}
	}
	assert.True(t, found)
}

func TestPainter_PointerVisible(t *testing.T) {
	screen := newMockScreen(80, 40)
	p, r := drawTwoSegments(t, screen, 0)

	tri := spinner.PointerTriangle(r.Center(), 100)
	col, row := p.toCell(tri[2])
	white := tcell.NewRGBColor(255, 255, 255)

	hit := false
	for dy := -1; dy <= 1; dy++ {
		if screen.bgAt(col, row+dy) == white {
			hit = true
		}
	}
	assert.True(t, hit)
}

func TestPainter_Flush(t *testing.T) {
	screen := newMockScreen(40, 20)
	p, _ := drawTwoSegments(t, screen, 1)
	p.Flush()
	assert.Equal(t, 1, screen.shows)
}

func TestInsidePolygon(t *testing.T) {
	tri := []spinner.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}}
	assert.True(t, insidePolygon(tri, spinner.Point{X: 5, Y: 3}))
	assert.False(t, insidePolygon(tri, spinner.Point{X: 0, Y: 9}))
}
