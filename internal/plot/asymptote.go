package plot

import "math"

// Asymptote is a reference complexity curve.
type Asymptote struct {
	Name string
	// Mark is the rune the curve is drawn with.
	Mark rune
	Eval func(n float64) float64
}

var asymptotes = []Asymptote{
	{Name: "O(1)", Mark: '-', Eval: func(float64) float64 { return 1 }},
	{Name: "O(log n)", Mark: '.', Eval: logN},
	{Name: "O(log log n)", Mark: ',', Eval: func(n float64) float64 { return logN(logN(n)) }},
	{Name: "O(n)", Mark: '/', Eval: func(n float64) float64 { return n }},
	{Name: "O(n log n)", Mark: ':', Eval: func(n float64) float64 { return n * logN(n) }},
	{Name: "O(n²)", Mark: '\'', Eval: func(n float64) float64 { return n * n }},
	{Name: "O(2ⁿ)", Mark: '^', Eval: math.Exp2},
	{Name: "O(n!)", Mark: '!', Eval: factorial},
}

// Asymptotes returns the reference curves, slowest-growing first.
func Asymptotes() []Asymptote {
	out := make([]Asymptote, len(asymptotes))
	copy(out, asymptotes)
	return out
}

// Lookup finds a reference curve by name.
func Lookup(name string) (Asymptote, bool) {
	for _, a := range asymptotes {
		if a.Name == name {
			return a, true
		}
	}
	return Asymptote{}, false
}

// logN is the natural log, 0 for n <= 1.
func logN(n float64) float64 {
	if n <= 1 {
		return 0
	}
	return math.Log(n)
}

// factorial is Γ(n+1) for n >= 0. It overflows to +Inf past n ≈ 170.
func factorial(n float64) float64 {
	if n < 0 {
		return 0
	}
	return math.Gamma(n + 1)
}

// Curve samples a over every column of rect, using the column offset as n
// and scaling against peak, the same maximum the data points are scaled by.
// Values beyond peak, including +Inf, clamp to the top row.
func (a Asymptote) Curve(rect Rect, peak int64) []Pixel {
	if rect.Empty() {
		return nil
	}
	pixels := make([]Pixel, 0, rect.Width)
	for i := 0; i < rect.Width; i++ {
		v := a.Eval(float64(i))
		if math.IsNaN(v) {
			continue
		}
		pixels = append(pixels, Pixel{X: rect.X + i, Y: scaleY(v, float64(peak), rect)})
	}
	return pixels
}
