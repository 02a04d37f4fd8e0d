package plot

import "strings"

// Layer tags what drew a cell so renderers can colour it.
type Layer int

const (
	LayerNone Layer = iota
	LayerAxis
	LayerCurve
	LayerPoint
)

type cell struct {
	r     rune
	layer Layer
}

// Canvas is a fixed-size character grid.
type Canvas struct {
	width, height int
	cells         [][]cell
}

func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height, cells: make([][]cell, height)}
	for y := range c.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Inner is the area left of the axes drawn by Axes.
func (c *Canvas) Inner() Rect {
	return Rect{X: 1, Y: 0, Width: c.width - 1, Height: c.height - 1}
}

// At returns the rune at (x, y), or 0 outside the grid.
func (c *Canvas) At(x, y int) rune {
	if !c.inside(x, y) {
		return 0
	}
	return c.cells[y][x].r
}

// Axes draws the y axis on column 0 and the x axis on the last row.
func (c *Canvas) Axes() {
	if c.width == 0 || c.height == 0 {
		return
	}
	bottom := c.height - 1
	for y := 0; y < bottom; y++ {
		c.set(0, y, '│', LayerAxis)
	}
	for x := 1; x < c.width; x++ {
		c.set(x, bottom, '─', LayerAxis)
	}
	c.set(0, bottom, '└', LayerAxis)
}

// Plot draws mark at every pixel, overwriting anything already there.
func (c *Canvas) Plot(pixels []Pixel, mark rune) {
	for _, p := range pixels {
		c.set(p.X, p.Y, mark, LayerPoint)
	}
}

// Curve draws mark along pixels, filling the vertical gap between
// neighbouring columns. It only draws on blank cells, so points and axes
// stay visible underneath.
func (c *Canvas) Curve(pixels []Pixel, mark rune) {
	for i, p := range pixels {
		from, to := p.Y, p.Y
		if i > 0 && pixels[i-1].X == p.X-1 {
			prev := pixels[i-1].Y
			// Fill from just past the previous row up to this one.
			switch {
			case prev > p.Y:
				from = p.Y
				to = prev - 1
			case prev < p.Y:
				from = prev + 1
				to = p.Y
			}
		}
		for y := from; y <= to; y++ {
			if c.inside(p.X, y) && c.cells[y][p.X].layer == LayerNone {
				c.cells[y][p.X] = cell{r: mark, layer: LayerCurve}
			}
		}
	}
}

// Text writes s starting at (x, y), clipped to the grid.
func (c *Canvas) Text(x, y int, s string) {
	for _, r := range s {
		c.set(x, y, r, LayerAxis)
		x++
	}
}

// String renders the grid, one line per row.
func (c *Canvas) String() string {
	return c.Render(nil)
}

// Render renders the grid, passing each run of same-layer cells through
// style. A nil style returns the runes unchanged.
func (c *Canvas) Render(style func(layer Layer, s string) string) string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].layer == row[start].layer {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			if style != nil {
				b.WriteString(style(row[start].layer, string(run)))
			} else {
				b.WriteString(string(run))
			}
			start = x
		}
	}
	return b.String()
}

func (c *Canvas) set(x, y int, r rune, layer Layer) {
	if c.inside(x, y) {
		c.cells[y][x] = cell{r: r, layer: layer}
	}
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}
