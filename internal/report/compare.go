package report

import (
	"fmt"

	"algobench/internal/trace"
)

// Comparison is the change in mean duration of one label between two traces.
type Comparison struct {
	Label string
	// Prev and Curr are mean durations in microseconds.
	Prev float64
	Curr float64
	// DiffPercent is the relative change; positive means slower.
	DiffPercent float64
	// New marks labels absent from the previous trace.
	New bool
}

type labelStats struct {
	total int64
	count int
}

func (l labelStats) mean() float64 {
	if l.count == 0 {
		return 0
	}
	return float64(l.total) / float64(l.count)
}

// meansByName averages durations per event name, returning names in first
// appearance order.
func meansByName(events []trace.Event) ([]string, map[string]labelStats) {
	var order []string
	stats := make(map[string]labelStats)
	for _, e := range events {
		name := trace.NormalizeName(e.Name)
		s, ok := stats[name]
		if !ok {
			order = append(order, name)
		}
		s.total += e.Duration
		s.count++
		stats[name] = s
	}
	return order, stats
}

// Compare matches events of two traces by name. Every label of curr gets a
// Comparison, in curr's order; labels only present in prev are dropped.
func Compare(prev, curr []trace.Event) []Comparison {
	_, prevStats := meansByName(prev)
	order, currStats := meansByName(curr)

	comparisons := make([]Comparison, 0, len(order))
	for _, name := range order {
		c := Comparison{Label: name, Curr: currStats[name].mean()}
		p, ok := prevStats[name]
		if !ok {
			c.New = true
			comparisons = append(comparisons, c)
			continue
		}
		c.Prev = p.mean()
		if c.Prev > 0 {
			c.DiffPercent = (c.Curr - c.Prev) / c.Prev * 100
		}
		comparisons = append(comparisons, c)
	}
	return comparisons
}

// Status classifies the change against a percentage threshold.
func (c Comparison) Status(threshold float64) string {
	switch {
	case c.New:
		return "NEW"
	case c.DiffPercent > threshold:
		return "SLOWER"
	case c.DiffPercent < -threshold:
		return "FASTER"
	}
	return "SAME"
}

func (c Comparison) String() string {
	if c.New {
		return fmt.Sprintf("%s: %.2fµs (new)", c.Label, c.Curr)
	}
	return fmt.Sprintf("%s: %+.2f%%", c.Label, c.DiffPercent)
}
