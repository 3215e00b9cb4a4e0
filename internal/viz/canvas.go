package viz

import "strings"

// Braille cells pack 2x4 dots per character, unicode offset 0x2800:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotMask = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille-dot drawing surface. Dot coordinates run over
// (Width*2) x (Height*4) sub-pixels.
type Canvas struct {
	Width, Height int
	grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, grid: make([][]rune, h)}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= dotMask[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// Viewport maps world coordinates onto canvas dots, world origin at the
// viewport center, y up.
type Viewport struct {
	Scale float64 // world units per full canvas width
	cx    float64
	cy    float64
}

func NewViewport(scale float64) *Viewport {
	return &Viewport{Scale: scale}
}

// Center recenters the viewport on a world point.
func (v *Viewport) Center(x, y float64) {
	v.cx, v.cy = x, y
}

// Plot draws a world point onto the canvas.
func (v *Viewport) Plot(c *Canvas, x, y float64) {
	if v.Scale <= 0 {
		return
	}
	dotsW := float64(c.Width * 2)
	dotsH := float64(c.Height * 4)

	px := (x-v.cx)/v.Scale*dotsW + dotsW/2
	py := dotsH/2 - (y-v.cy)/v.Scale*dotsW
	c.Set(int(px), int(py))
}
