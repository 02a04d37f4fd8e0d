package profiler

import (
	"bytes"
	"errors"
	"runtime"
	"strconv"
	"time"

	"algobench/internal/trace"
)

// ErrNoSession is returned by SessionInfo when no session is open.
var ErrNoSession = errors.New("no active profiling session")

// Sample is one completed timed region. Start and End are microseconds since
// the recorder's epoch; End >= Start.
type Sample struct {
	Name     string
	Category string
	Start    int64
	End      int64
	ThreadID uint64
}

// Duration is End-Start in microseconds.
func (s Sample) Duration() int64 { return s.End - s.Start }

// Event converts the sample into its trace record.
func (s Sample) Event() trace.Event {
	return trace.Event{
		Category:  s.Category,
		Duration:  s.Duration(),
		Name:      s.Name,
		Phase:     trace.PhaseComplete,
		ThreadID:  s.ThreadID,
		Timestamp: s.Start,
	}
}

// SampleFromEvent is the inverse of Sample.Event, up to name quote normalisation.
func SampleFromEvent(e trace.Event) Sample {
	return Sample{
		Name:     e.Name,
		Category: e.Category,
		Start:    e.Timestamp,
		End:      e.End(),
		ThreadID: e.ThreadID,
	}
}

// Session describes the active recording context.
type Session struct {
	ID      string
	Name    string
	Path    string
	Started time.Time
}

// Clock returns a monotonic timestamp in microseconds.
type Clock interface {
	NowMicros() int64
}

type monotonicClock struct {
	epoch time.Time
}

// time.Since uses the monotonic reading captured in epoch.
func (c monotonicClock) NowMicros() int64 {
	return time.Since(c.epoch).Microseconds()
}

// Observer is notified of recorder activity. internal/metrics implements it.
type Observer interface {
	SampleRecorded(s Sample)
	SessionStarted(name string)
	SessionEnded(name string, samples int)
	WriteFailed(op string, err error)
}

type nopObserver struct{}

func (nopObserver) SampleRecorded(Sample)     {}
func (nopObserver) SessionStarted(string)     {}
func (nopObserver) SessionEnded(string, int)  {}
func (nopObserver) WriteFailed(string, error) {}

var goroutinePrefix = []byte("goroutine ")

// currentThreadID returns the id of the calling goroutine, the closest Go
// analogue of an OS thread id for attributing samples.
func currentThreadID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
