// Package trace reads and writes the Chrome trace-event envelope produced by
// the profiler:
//
//	{"otherData": {},"traceEvents":[{"cat":...,"dur":...,"name":...,"ph":"X","pid":0,"tid":...,"ts":...}]}
//
// Only complete ("X") events with the fixed field set below are supported.
package trace

import (
	"errors"
	"regexp"
	"strconv"
)

// PhaseComplete marks a duration event carrying both ts and dur.
const PhaseComplete = "X"

var (
	// ErrMalformed is returned when a file is not a trace envelope.
	ErrMalformed = errors.New("malformed trace file")

	// ErrTruncated is returned by Recover when the envelope was never closed
	// (for example the writing process died mid-session). The events read up
	// to the last complete record are still returned.
	ErrTruncated = errors.New("truncated trace file")
)

// Event is one record of the traceEvents array.
type Event struct {
	Category  string `json:"cat"`
	Duration  int64  `json:"dur"`
	Name      string `json:"name"`
	Phase     string `json:"ph"`
	ProcessID int    `json:"pid"`
	ThreadID  uint64 `json:"tid"`
	Timestamp int64  `json:"ts"`
}

// End is the event's end timestamp in microseconds.
func (e Event) End() int64 { return e.Timestamp + e.Duration }

// Label is the structured form of a benchmark event name such as
// "Merge Sort (Average, Size: 3000)".
type Label struct {
	Algorithm string
	Case      string
	Size      int
}

var labelRegex = regexp.MustCompile(`^(.+?) \((\w+), Size: (\d+)\)$`)

// ParseLabel splits a benchmark event name. ok is false for free-form names.
func ParseLabel(name string) (Label, bool) {
	m := labelRegex.FindStringSubmatch(name)
	if m == nil {
		return Label{}, false
	}
	size, err := strconv.Atoi(m[3])
	if err != nil {
		return Label{}, false
	}
	return Label{Algorithm: m[1], Case: m[2], Size: size}, true
}

// String formats the label the way the harness names its timers.
func (l Label) String() string {
	return l.Algorithm + " (" + l.Case + ", Size: " + strconv.Itoa(l.Size) + ")"
}
