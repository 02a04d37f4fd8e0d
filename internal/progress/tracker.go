// Package progress holds the live, read-mostly view of a benchmark run that
// progress displays poll.
package progress

import "sync"

// RecentResults is how many result labels a Snapshot keeps.
const RecentResults = 5

// Snapshot is a copy of the tracker state at one instant.
type Snapshot struct {
	Algorithm  string
	Case       string
	Size       int
	CurrentRun int
	TotalRuns  int
	Fraction   float64
	Running    bool
	// Recent holds up to RecentResults labels, newest first.
	Recent []string
}

// Tracker is updated by the harness and read concurrently by displays.
type Tracker struct {
	mu       sync.RWMutex
	current  Snapshot
	recent   *ring[string]
	onChange func(Snapshot)
}

func NewTracker() *Tracker {
	return &Tracker{recent: newRing[string](RecentResults)}
}

// OnChange registers fn to be called with a fresh snapshot after every
// update. fn runs on the updating goroutine and must not call back into the
// tracker's mutating methods.
func (t *Tracker) OnChange(fn func(Snapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// Reset clears all state and marks a run of total timed regions as started.
func (t *Tracker) Reset(total int) {
	t.update(func() {
		t.current = Snapshot{TotalRuns: total, Running: true}
		t.recent.clear()
	})
}

// Begin records that the next timed region is about to run.
func (t *Tracker) Begin(algorithm, caseName string, size int) {
	t.update(func() {
		t.current.Algorithm = algorithm
		t.current.Case = caseName
		t.current.Size = size
		t.current.CurrentRun++
		t.current.Running = true
		if t.current.TotalRuns > 0 {
			t.current.Fraction = float64(t.current.CurrentRun) / float64(t.current.TotalRuns)
		}
	})
}

// AddResult pushes a human-readable result label, evicting the oldest beyond
// RecentResults.
func (t *Tracker) AddResult(label string) {
	t.update(func() { t.recent.push(label) })
}

// Finish marks the run as no longer running.
func (t *Tracker) Finish() {
	t.update(func() { t.current.Running = false })
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() Snapshot {
	s := t.current
	s.Recent = t.recent.newestFirst()
	return s
}

func (t *Tracker) update(fn func()) {
	t.mu.Lock()
	fn()
	snap := t.snapshotLocked()
	notify := t.onChange
	t.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
}
