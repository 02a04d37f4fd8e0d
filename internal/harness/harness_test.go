package harness

import (
	"bytes"
	"log/slog"
	"math/rand"
	"path/filepath"
	"sort"
	"testing"

	"algobench/internal/algo"
	"algobench/internal/profiler"
	"algobench/internal/progress"
	"algobench/internal/trace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestHarness(t *testing.T, opts ...Option) (*Harness, *profiler.Recorder) {
	t.Helper()
	rec := profiler.NewRecorder(profiler.WithLogger(quietLogger()))
	t.Cleanup(func() { rec.Close() })
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1))), WithLogger(quietLogger())}, opts...)
	return New(rec, opts...), rec
}

func TestRunDescriptor_Sizes(t *testing.T) {
	d := RunDescriptor{NumRuns: 5, InitialSize: 1000, SizeIncrement: 2000}
	require.NoError(t, d.Validate())
	assert.Equal(t, []int{1000, 3000, 5000, 7000, 9000}, d.Sizes())
	assert.Equal(t, 9000, d.MaxSize())

	flat := RunDescriptor{NumRuns: 3, InitialSize: 10, SizeIncrement: 0}
	assert.Equal(t, []int{10, 10, 10}, flat.Sizes())
}

func TestRunDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name string
		d    RunDescriptor
	}{
		{"zero runs", RunDescriptor{NumRuns: 0, InitialSize: 1, SizeIncrement: 1}},
		{"zero size", RunDescriptor{NumRuns: 1, InitialSize: 0, SizeIncrement: 1}},
		{"negative increment", RunDescriptor{NumRuns: 1, InitialSize: 1, SizeIncrement: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.d.Validate(), ErrInvalidDescriptor)
		})
	}
}

func TestRun_SampleCountAndOrder(t *testing.T) {
	for _, mode := range Modes {
		t.Run(string(mode), func(t *testing.T) {
			h, rec := newTestHarness(t)
			path := filepath.Join(t.TempDir(), string(mode)+".json")
			desc := RunDescriptor{NumRuns: 5, InitialSize: 100, SizeIncrement: 200}

			res, err := h.Run(mode, desc, path)
			require.NoError(t, err)
			assert.True(t, res.Persisted)
			assert.Equal(t, 5*3*2, res.Samples)
			assert.Equal(t, []int{100, 300, 500, 700, 900}, res.Sizes)

			events, err := trace.Load(path)
			require.NoError(t, err)
			require.Len(t, events, 30)
			assert.Len(t, rec.Samples(), 30)

			algorithms := mode.Algorithms()
			i := 0
			for _, size := range desc.Sizes() {
				for _, c := range Cases {
					for _, a := range algorithms {
						e := events[i]
						assert.Equal(t, Label(a, c, size), e.Name)
						assert.Equal(t, string(c), e.Category)
						assert.GreaterOrEqual(t, e.Duration, int64(0))
						i++
					}
				}
			}
		})
	}
}

func TestRun_ProgressSnapshot(t *testing.T) {
	tracker := progress.NewTracker()
	h, _ := newTestHarness(t, WithTracker(tracker))

	var updates int
	tracker.OnChange(func(progress.Snapshot) { updates++ })

	_, err := h.Run(Sorting, RunDescriptor{NumRuns: 2, InitialSize: 10, SizeIncrement: 10}, filepath.Join(t.TempDir(), "s.json"))
	require.NoError(t, err)

	s := tracker.Snapshot()
	assert.False(t, s.Running)
	assert.Equal(t, 12, s.CurrentRun)
	assert.Equal(t, 12, s.TotalRuns)
	assert.InDelta(t, 1.0, s.Fraction, 1e-9)
	assert.Equal(t, "Quick Sort", s.Algorithm)
	assert.Equal(t, "Worst", s.Case)
	assert.Equal(t, 20, s.Size)
	require.Len(t, s.Recent, progress.RecentResults)
	assert.Equal(t, "Quick Sort - Worst - Size 20", s.Recent[0])
	assert.Equal(t, "Merge Sort - Worst - Size 20", s.Recent[1])
	// Reset + Begin/AddResult per sample + Finish.
	assert.Equal(t, 1+12*2+1, updates)
}

func TestRun_UnwritableTraceContinuesInMemory(t *testing.T) {
	h, rec := newTestHarness(t)
	bad := filepath.Join(t.TempDir(), "no", "such", "dir", "trace.json")

	res, err := h.Run(Searching, RunDescriptor{NumRuns: 1, InitialSize: 16, SizeIncrement: 0}, bad)
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Equal(t, 6, res.Samples)
	assert.Len(t, rec.Samples(), 6)
}

func TestRun_InvalidDescriptor(t *testing.T) {
	h, rec := newTestHarness(t)
	_, err := h.Run(Sorting, RunDescriptor{NumRuns: 0, InitialSize: 1}, filepath.Join(t.TempDir(), "x.json"))
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
	assert.Empty(t, rec.Samples())
}

func TestRun_UnknownMode(t *testing.T) {
	h, _ := newTestHarness(t)
	_, err := h.Run(Mode("bogus"), RunDescriptor{NumRuns: 1, InitialSize: 1}, filepath.Join(t.TempDir(), "x.json"))
	assert.Error(t, err)
}

func TestRun_DumpWritesAllSamples(t *testing.T) {
	dir := t.TempDir()
	dump := filepath.Join(dir, "all.json")
	h, _ := newTestHarness(t, WithDumpPath(dump))
	desc := RunDescriptor{NumRuns: 1, InitialSize: 8, SizeIncrement: 0}

	_, err := h.Run(Sorting, desc, filepath.Join(dir, "sorting.json"))
	require.NoError(t, err)
	res, err := h.Run(Searching, desc, filepath.Join(dir, "searching.json"))
	require.NoError(t, err)
	assert.Equal(t, dump, res.DumpPath)

	events, err := trace.Load(dump)
	require.NoError(t, err)
	assert.Len(t, events, 12, "dump spans both sessions")

	sorting, err := trace.Load(filepath.Join(dir, "sorting.json"))
	require.NoError(t, err)
	assert.Len(t, sorting, 6, "session file only holds its own samples")
}

func TestWarmup_RecordsNothing(t *testing.T) {
	tracker := progress.NewTracker()
	h, rec := newTestHarness(t, WithTracker(tracker))

	require.NoError(t, h.Warmup(Sorting, RunDescriptor{NumRuns: 2, InitialSize: 50, SizeIncrement: 50}))
	require.NoError(t, h.Warmup(Searching, RunDescriptor{NumRuns: 2, InitialSize: 50, SizeIncrement: 50}))
	assert.Empty(t, rec.Samples())
	assert.Equal(t, 0, tracker.Snapshot().CurrentRun)

	assert.ErrorIs(t, h.Warmup(Sorting, RunDescriptor{}), ErrInvalidDescriptor)
}

func TestSortingInput(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	best := SortingInput(Best, 5, rng)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, best.Data)

	worst := SortingInput(Worst, 5, rng)
	assert.Equal(t, []int{4, 3, 2, 1, 0}, worst.Data)

	avg := SortingInput(Average, 100, rng)
	require.Len(t, avg.Data, 100)
	for _, v := range avg.Data {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 200)
	}
}

func TestSearchingInput_TargetsArePresent(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for _, c := range Cases {
		for _, n := range []int{1, 2, 7, 100} {
			in := SearchingInput(c, n, rng)
			require.Len(t, in.Data, n)
			require.True(t, sort.IntsAreSorted(in.Data), "%s/%d not sorted", c, n)

			i := algo.BinarySearch(in.Data, in.Target)
			require.NotEqual(t, algo.NotFound, i, "%s/%d target missing", c, n)
		}
	}

	best := SearchingInput(Best, 10, rng)
	assert.Equal(t, 5, best.Target)

	worst := SearchingInput(Worst, 10, rng)
	assert.Equal(t, -5, worst.Data[0])
	assert.Equal(t, 4, worst.Target)
}

func TestSearchingInput_Empty(t *testing.T) {
	in := SearchingInput(Average, 0, rand.New(rand.NewSource(1)))
	assert.Empty(t, in.Data)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Sorting")
	require.NoError(t, err)
	assert.Equal(t, Sorting, m)

	m, err = ParseMode("searching")
	require.NoError(t, err)
	assert.Equal(t, Searching, m)

	_, err = ParseMode("graphs")
	assert.Error(t, err)
}

func TestQuickSortPivot(t *testing.T) {
	assert.Equal(t, algo.PivotLast, quickSortPivot(Worst, algo.PivotRandom))
	assert.Equal(t, algo.PivotLast, quickSortPivot(Worst, algo.PivotFirst))
	assert.Equal(t, algo.PivotRandom, quickSortPivot(Best, algo.PivotRandom))
	assert.Equal(t, algo.PivotFirst, quickSortPivot(Average, algo.PivotFirst))
}
