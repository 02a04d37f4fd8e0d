package report

import "algobench/internal/trace"

type seriesKey struct {
	algorithm string
	category  string
}

// Summarize groups events into series by algorithm and case, keeping the
// order in which each series first appears.
func Summarize(source string, events []trace.Event) Summary {
	s := Summary{Source: source, Events: len(events)}
	index := make(map[seriesKey]int)

	for _, e := range events {
		label, ok := trace.ParseLabel(e.Name)
		key := seriesKey{algorithm: label.Algorithm, category: label.Case}
		if !ok {
			s.Unlabeled++
			key = seriesKey{algorithm: e.Name, category: e.Category}
		}

		i, seen := index[key]
		if !seen {
			i = len(s.Series)
			index[key] = i
			s.Series = append(s.Series, Series{Algorithm: key.algorithm, Case: key.category})
		}
		s.Series[i].Points = append(s.Series[i].Points, SeriesPoint{Size: label.Size, Duration: e.Duration})
	}

	for i := range s.Series {
		s.Series[i].finalize()
	}
	return s
}

func (s *Series) finalize() {
	s.Count = len(s.Points)
	if s.Count == 0 {
		return
	}
	var total int64
	s.Min, s.Max = s.Points[0].Duration, s.Points[0].Duration
	for _, p := range s.Points {
		total += p.Duration
		if p.Duration < s.Min {
			s.Min = p.Duration
		}
		if p.Duration > s.Max {
			s.Max = p.Duration
		}
	}
	s.Mean = float64(total) / float64(s.Count)
}

// Find returns the series for algorithm and case.
func (s Summary) Find(algorithm, caseName string) (Series, bool) {
	for _, series := range s.Series {
		if series.Algorithm == algorithm && series.Case == caseName {
			return series, true
		}
	}
	return Series{}, false
}
