package plot

// PointMark is the rune used for data points.
const PointMark = '●'

// Chart draws axes, the reference curves and then points onto a new
// width×height canvas. Curves share the points' scale so their relative
// growth is comparable with the measured durations.
func Chart(points []Point, width, height int, curves []Asymptote) *Canvas {
	c := NewCanvas(width, height)
	c.Axes()
	inner := c.Inner()
	if inner.Empty() {
		return c
	}

	peak := MaxDuration(points)
	for _, a := range curves {
		c.Curve(a.Curve(inner, peak), a.Mark)
	}
	c.Plot(Scale(points, inner), PointMark)
	return c
}
