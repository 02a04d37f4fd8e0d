// Package report turns trace files into summaries, comparisons and CSV.
package report

import "errors"

// ErrNoEvents is returned when a trace holds no records to export.
var ErrNoEvents = errors.New("no trace events found")

// SeriesPoint is one measurement of a series.
type SeriesPoint struct {
	Size     int   `json:"size" yaml:"size" toml:"size"`
	Duration int64 `json:"dur" yaml:"dur" toml:"dur"`
}

// Series groups the samples of one algorithm under one case type, in
// emission order.
type Series struct {
	Algorithm string        `json:"algorithm" yaml:"algorithm" toml:"algorithm"`
	Case      string        `json:"case" yaml:"case" toml:"case"`
	Count     int           `json:"count" yaml:"count" toml:"count"`
	Min       int64         `json:"min_us" yaml:"min_us" toml:"min_us"`
	Max       int64         `json:"max_us" yaml:"max_us" toml:"max_us"`
	Mean      float64       `json:"mean_us" yaml:"mean_us" toml:"mean_us"`
	Points    []SeriesPoint `json:"points" yaml:"points" toml:"points"`
}

// Summary describes a whole trace file.
type Summary struct {
	Source string `json:"source" yaml:"source" toml:"source"`
	Events int    `json:"events" yaml:"events" toml:"events"`
	// Unlabeled counts events whose names are not benchmark labels. They are
	// still summarised, keyed by name and category.
	Unlabeled int      `json:"unlabeled" yaml:"unlabeled" toml:"unlabeled"`
	Truncated bool     `json:"truncated,omitempty" yaml:"truncated,omitempty" toml:"truncated,omitempty"`
	Series    []Series `json:"series" yaml:"series" toml:"series"`
}
