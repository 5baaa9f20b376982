package tui

import (
	"strings"

	"github.com/san-kum/scenelab/internal/engine"
)

// canvas is a rune grid mapping the world's simulation surface onto
// terminal cells. Each axis scales independently, so the aspect ratio
// follows the grid dimensions the caller picks.
type canvas struct {
	cells  [][]rune
	cols   int
	rows   int
	scaleX float64
	scaleY float64
}

func newCanvas(cols, rows int, worldW, worldH float64) *canvas {
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = make([]rune, cols)
	}
	return &canvas{
		cells:  cells,
		cols:   cols,
		rows:   rows,
		scaleX: float64(cols) / worldW,
		scaleY: float64(rows) / worldH,
	}
}

func (c *canvas) clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = ' '
		}
	}
}

func (c *canvas) project(p engine.Vec2) (int, int) {
	return int(p.X * c.scaleX), int(p.Y * c.scaleY)
}

func (c *canvas) set(x, y int, r rune) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.rows {
		c.cells[y][x] = r
	}
}

func (c *canvas) setWorld(p engine.Vec2, r rune) {
	x, y := c.project(p)
	c.set(x, y, r)
}

func (c *canvas) line(x1, y1, x2, y2 int, r rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x1, y1, r)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (c *canvas) worldLine(a, b engine.Vec2, r rune) {
	x1, y1 := c.project(a)
	x2, y2 := c.project(b)
	c.line(x1, y1, x2, y2, r)
}

// box fills the projected rectangle between two world corners.
func (c *canvas) box(min, max engine.Vec2, r rune) {
	x1, y1 := c.project(min)
	x2, y2 := c.project(max)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c.set(x, y, r)
		}
	}
}

// outline draws just the projected rectangle's border.
func (c *canvas) outline(min, max engine.Vec2, r rune) {
	x1, y1 := c.project(min)
	x2, y2 := c.project(max)
	for x := x1; x <= x2; x++ {
		c.set(x, y1, r)
		c.set(x, y2, r)
	}
	for y := y1; y <= y2; y++ {
		c.set(x1, y, r)
		c.set(x2, y, r)
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		b.WriteString(string(row))
		if y < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
