package harness

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDescriptor is returned for run descriptors that do not describe a
// finite, non-decreasing size progression.
var ErrInvalidDescriptor = errors.New("invalid run descriptor")

// RunDescriptor defines the size progression
// InitialSize, InitialSize+SizeIncrement, ... with NumRuns terms.
type RunDescriptor struct {
	NumRuns       int `json:"num_runs" yaml:"num_runs"`
	InitialSize   int `json:"initial_size" yaml:"initial_size"`
	SizeIncrement int `json:"size_increment" yaml:"size_increment"`
}

// Validate checks NumRuns > 0, InitialSize > 0 and SizeIncrement >= 0.
func (d RunDescriptor) Validate() error {
	var problems []string
	if d.NumRuns <= 0 {
		problems = append(problems, fmt.Sprintf("num_runs must be positive, got: %d", d.NumRuns))
	}
	if d.InitialSize <= 0 {
		problems = append(problems, fmt.Sprintf("initial_size must be positive, got: %d", d.InitialSize))
	}
	if d.SizeIncrement < 0 {
		problems = append(problems, fmt.Sprintf("size_increment must not be negative, got: %d", d.SizeIncrement))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDescriptor, strings.Join(problems, "; "))
	}
	return nil
}

// Sizes returns the NumRuns terms of the progression.
func (d RunDescriptor) Sizes() []int {
	if d.NumRuns <= 0 {
		return nil
	}
	sizes := make([]int, d.NumRuns)
	for i := range sizes {
		sizes[i] = d.InitialSize + i*d.SizeIncrement
	}
	return sizes
}

// MaxSize is the last term of the progression.
func (d RunDescriptor) MaxSize() int {
	if d.NumRuns <= 0 {
		return 0
	}
	return d.InitialSize + (d.NumRuns-1)*d.SizeIncrement
}

// Case selects the input distribution for one benchmark iteration.
type Case string

const (
	Best    Case = "Best"
	Average Case = "Average"
	Worst   Case = "Worst"
)

// Cases is the fixed iteration order of case types.
var Cases = []Case{Best, Average, Worst}

// Mode is a benchmark family with its own algorithm set and trace file.
type Mode string

const (
	Sorting   Mode = "sorting"
	Searching Mode = "searching"
)

// Modes lists every mode in run order.
var Modes = []Mode{Sorting, Searching}

// ParseMode accepts "sorting" or "searching" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Sorting:
		return Sorting, nil
	case Searching:
		return Searching, nil
	}
	return "", fmt.Errorf("unknown benchmark mode %q (want sorting or searching)", s)
}

// SessionName is the profiling session name used for the mode.
func (m Mode) SessionName() string {
	switch m {
	case Sorting:
		return "Sorting Benchmarks"
	case Searching:
		return "Searching Benchmarks"
	}
	return string(m)
}

// Algorithms returns the names of the algorithms the mode benchmarks, in
// iteration order.
func (m Mode) Algorithms() []string {
	specs := algorithmsFor(m)
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.name
	}
	return names
}

// Result summarises one Run.
type Result struct {
	Mode      Mode
	Sizes     []int
	Samples   int
	TracePath string
	// Persisted is false when the trace file could not be opened; samples
	// are then only in the recorder's memory.
	Persisted bool
	DumpPath  string
}

// Label is the timer name for one combination.
func Label(algorithm string, c Case, size int) string {
	return fmt.Sprintf("%s (%s, Size: %d)", algorithm, c, size)
}

// ResultLabel is the short line pushed to the progress tracker.
func ResultLabel(algorithm string, c Case, size int) string {
	return fmt.Sprintf("%s - %s - Size %d", algorithm, c, size)
}
