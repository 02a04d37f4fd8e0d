package profiler

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"algobench/internal/trace"

	"github.com/google/uuid"
)

// Recorder accumulates samples and streams them into the trace file of the
// open session. It is an explicit handle: construct one per benchmark mode,
// pass it to whatever needs timing, and Close it when done.
//
// At most one session is open at a time. Record is safe for concurrent use;
// the in-memory append and the file write happen under one lock so records
// never interleave.
type Recorder struct {
	mu       sync.Mutex
	clock    Clock
	observer Observer
	logger   *slog.Logger

	session *Session
	file    *os.File
	writer  *trace.Writer
	samples []Sample
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock replaces the monotonic microsecond clock.
func WithClock(c Clock) Option {
	return func(r *Recorder) { r.clock = c }
}

// WithObserver registers an observer for recorded samples and write failures.
func WithObserver(o Observer) Option {
	return func(r *Recorder) { r.observer = o }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		clock:    monotonicClock{epoch: time.Now()},
		observer: nopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BeginSession opens path and writes the envelope header immediately. If a
// session is already open it is ended first. When path cannot be opened the
// error is returned, no session is active afterwards, and later samples are
// kept in memory only.
func (r *Recorder) BeginSession(name, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		r.logger.Warn("Profiling session already open, ending it",
			"open_session", r.session.Name, "new_session", name)
		r.endLocked()
	}

	f, err := os.Create(path)
	if err != nil {
		r.logger.Error("Failed to open trace file", "session", name, "path", path, "error", err)
		r.observer.WriteFailed("open", err)
		return fmt.Errorf("failed to begin session %q: %w", name, err)
	}

	w := trace.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		f.Close()
		r.logger.Error("Failed to write trace header", "session", name, "path", path, "error", err)
		r.observer.WriteFailed("header", err)
		return fmt.Errorf("failed to begin session %q: %w", name, err)
	}

	r.session = &Session{
		ID:      uuid.NewString(),
		Name:    name,
		Path:    path,
		Started: time.Now(),
	}
	r.file = f
	r.writer = w
	r.observer.SessionStarted(name)
	r.logger.Debug("Profiling session started", "session", name, "id", r.session.ID, "path", path)
	return nil
}

// EndSession writes the envelope footer and closes the file. Without an open
// session it only logs a diagnostic.
func (r *Recorder) EndSession() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		r.logger.Warn("EndSession called without an active profiling session")
		return nil
	}
	return r.endLocked()
}

func (r *Recorder) endLocked() error {
	s := r.session
	count := r.writer.Count()

	var firstErr error
	if err := r.writer.WriteFooter(); err != nil {
		r.logger.Error("Failed to write trace footer", "session", s.Name, "path", s.Path, "error", err)
		r.observer.WriteFailed("footer", err)
		firstErr = err
	}
	if err := r.file.Close(); err != nil && firstErr == nil {
		r.logger.Error("Failed to close trace file", "session", s.Name, "path", s.Path, "error", err)
		r.observer.WriteFailed("close", err)
		firstErr = err
	}

	r.session = nil
	r.file = nil
	r.writer = nil
	r.observer.SessionEnded(s.Name, count)
	r.logger.Debug("Profiling session ended", "session", s.Name, "id", s.ID, "samples", count)

	if firstErr != nil {
		return fmt.Errorf("failed to end session %q: %w", s.Name, firstErr)
	}
	return nil
}

// Record stores s and, when a session is open, appends it to the trace file.
// The sample is kept in memory even if the write fails.
func (r *Recorder) Record(s Sample) {
	if s.End < s.Start {
		s.End = s.Start
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples = append(r.samples, s)
	r.observer.SampleRecorded(s)

	if r.writer == nil {
		return
	}
	if err := r.writer.WriteEvent(s.Event()); err != nil {
		r.logger.Error("Failed to write trace event", "session", r.session.Name, "sample", s.Name, "error", err)
		r.observer.WriteFailed("event", err)
	}
}

// Samples returns a copy of every sample recorded since construction,
// across all sessions, in recording order.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

// SessionInfo returns the open session, or ErrNoSession.
func (r *Recorder) SessionInfo() (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return Session{}, ErrNoSession
	}
	return *r.session, nil
}

// SessionCount is the number of records written in the open session.
func (r *Recorder) SessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.writer == nil {
		return 0
	}
	return r.writer.Count()
}

// Dump writes every recorded sample to path as one complete envelope. It is
// independent of the streaming session file.
func (r *Recorder) Dump(path string) error {
	samples := r.Samples()
	events := make([]trace.Event, len(samples))
	for i, s := range samples {
		events[i] = s.Event()
	}

	f, err := os.Create(path)
	if err != nil {
		r.logger.Error("Failed to open dump file", "path", path, "error", err)
		r.observer.WriteFailed("dump", err)
		return fmt.Errorf("failed to dump samples: %w", err)
	}
	if err := trace.Encode(f, events); err != nil {
		f.Close()
		r.observer.WriteFailed("dump", err)
		return fmt.Errorf("failed to dump samples to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		r.observer.WriteFailed("dump", err)
		return fmt.Errorf("failed to close dump file %s: %w", path, err)
	}
	return nil
}

// Close ends the open session, if any.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return nil
	}
	return r.endLocked()
}

// Now reads the recorder's clock.
func (r *Recorder) Now() int64 {
	return r.clock.NowMicros()
}
