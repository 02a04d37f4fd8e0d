package profiler

import (
	"sync"
	"sync/atomic"
)

// Timer measures one code region and records exactly one Sample. Use it with
// defer so the region is recorded on every exit path, panics included:
//
//	t := rec.Start("Merge Sort (Best, Size: 1000)", "Best")
//	defer t.Stop()
type Timer struct {
	rec      *Recorder
	name     string
	category string
	start    int64
	threadID uint64

	once    sync.Once
	stopped atomic.Bool
	sample  Sample
}

// Start begins timing a region.
func (r *Recorder) Start(name, category string) *Timer {
	return &Timer{
		rec:      r,
		name:     name,
		category: category,
		threadID: currentThreadID(),
		start:    r.clock.NowMicros(),
	}
}

// Stop records the sample on the first call. Later calls do nothing and
// return the same sample.
func (t *Timer) Stop() Sample {
	t.once.Do(func() {
		end := t.rec.clock.NowMicros()
		if end < t.start {
			end = t.start
		}
		t.sample = Sample{
			Name:     t.name,
			Category: t.category,
			Start:    t.start,
			End:      end,
			ThreadID: t.threadID,
		}
		t.stopped.Store(true)
		t.rec.Record(t.sample)
	})
	return t.sample
}

// Stopped reports whether Stop has run.
func (t *Timer) Stopped() bool {
	return t.stopped.Load()
}
