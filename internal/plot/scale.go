// Package plot maps trace durations into a character grid: data points by
// emission index, plus the classic complexity curves as reference.
package plot

import (
	"math"

	"algobench/internal/trace"
)

// Point is one plotted sample: its emission index and duration.
type Point struct {
	Index    int
	Duration int64
}

// Rect is a drawing area in cell coordinates. Y grows downward, so the
// baseline is Y+Height-1.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Bottom is the baseline row.
func (r Rect) Bottom() int { return r.Y + r.Height - 1 }

// Right is the last column.
func (r Rect) Right() int { return r.X + r.Width - 1 }

// Empty reports whether nothing can be drawn in r.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

type Pixel struct {
	X, Y int
}

// Points turns events into points in emission order.
func Points(events []trace.Event) []Point {
	points := make([]Point, len(events))
	for i, e := range events {
		points[i] = Point{Index: i, Duration: e.Duration}
	}
	return points
}

// MaxDuration is the largest duration in points, or 0.
func MaxDuration(points []Point) int64 {
	var peak int64
	for _, p := range points {
		if p.Duration > peak {
			peak = p.Duration
		}
	}
	return peak
}

// Scale maps points linearly into rect. The first point lands on the left
// edge and the last on the right edge; duration 0 lands on the baseline and
// the maximum duration on the top row. When every duration is 0 all points
// sit on the baseline.
func Scale(points []Point, rect Rect) []Pixel {
	if len(points) == 0 || rect.Empty() {
		return nil
	}
	peak := MaxDuration(points)
	last := len(points) - 1

	pixels := make([]Pixel, len(points))
	for i, p := range points {
		x := rect.X
		if last > 0 {
			x += p.Index * (rect.Width - 1) / last
		}
		pixels[i] = Pixel{X: clamp(x, rect.X, rect.Right()), Y: scaleY(float64(p.Duration), float64(peak), rect)}
	}
	return pixels
}

// scaleY maps v in [0, peak] onto the rows of rect. Values above peak, and
// infinities, clamp to the top row.
func scaleY(v, peak float64, rect Rect) int {
	if peak <= 0 || v <= 0 || math.IsNaN(v) {
		return rect.Bottom()
	}
	offset := int(v / peak * float64(rect.Height-1))
	if v >= peak || offset > rect.Height-1 {
		offset = rect.Height - 1
	}
	return rect.Bottom() - offset
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
