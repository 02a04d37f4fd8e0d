// Package harness drives the algorithm library across every (size, case,
// algorithm) combination of a run descriptor, timing each call through the
// profiler.
package harness

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"algobench/internal/algo"
	"algobench/internal/profiler"
	"algobench/internal/progress"
)

// Harness runs benchmark modes synchronously, one algorithm call at a time.
type Harness struct {
	rec      *profiler.Recorder
	tracker  *progress.Tracker
	rng      *rand.Rand
	pivot    algo.PivotStrategy
	logger   *slog.Logger
	dumpPath string
}

// Option configures a Harness.
type Option func(*Harness)

// WithTracker publishes progress to t.
func WithTracker(t *progress.Tracker) Option {
	return func(h *Harness) { h.tracker = t }
}

// WithRand sets the random source for input synthesis and random pivots.
func WithRand(rng *rand.Rand) Option {
	return func(h *Harness) { h.rng = rng }
}

// WithPivot sets the quick sort pivot for the best and average cases. The
// worst case always pivots on the last element.
func WithPivot(p algo.PivotStrategy) Option {
	return func(h *Harness) { h.pivot = p }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithDumpPath makes Run write every sample the recorder holds to path after
// the session ends.
func WithDumpPath(path string) Option {
	return func(h *Harness) { h.dumpPath = path }
}

func New(rec *profiler.Recorder, opts ...Option) *Harness {
	h := &Harness{
		rec:     rec,
		tracker: progress.NewTracker(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.rng == nil {
		h.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return h
}

func (h *Harness) env() runEnv {
	return runEnv{rng: h.rng, pivot: h.pivot}
}

// Tracker returns the progress tracker the harness updates.
func (h *Harness) Tracker() *progress.Tracker { return h.tracker }

// Run benchmarks every algorithm of mode over desc, streaming samples into
// tracePath. Iteration order is sizes, then cases, then algorithms; samples
// are emitted in exactly that order.
//
// Failure to open tracePath is logged and the run continues with samples
// kept in memory; Result.Persisted reports it. Only an invalid descriptor or
// unknown mode makes Run return an error.
func (h *Harness) Run(mode Mode, desc RunDescriptor, tracePath string) (Result, error) {
	if err := desc.Validate(); err != nil {
		return Result{}, err
	}
	specs := algorithmsFor(mode)
	if len(specs) == 0 {
		return Result{}, fmt.Errorf("unknown benchmark mode %q", mode)
	}

	sizes := desc.Sizes()
	total := len(sizes) * len(Cases) * len(specs)
	res := Result{Mode: mode, Sizes: sizes, TracePath: tracePath, Persisted: true}

	h.tracker.Reset(total)
	defer h.tracker.Finish()

	if err := h.rec.BeginSession(mode.SessionName(), tracePath); err != nil {
		h.logger.Error("Trace file unavailable, keeping samples in memory only",
			"mode", mode, "path", tracePath, "error", err)
		res.Persisted = false
	}

	start := time.Now()
	for _, size := range sizes {
		for _, c := range Cases {
			in := inputFor(mode, c, size, h.rng)
			for _, spec := range specs {
				h.runOne(spec, c, size, in)
				res.Samples++
			}
		}
		h.logger.Debug("Benchmark size complete", "mode", mode, "size", size)
	}

	if res.Persisted {
		if err := h.rec.EndSession(); err != nil {
			h.logger.Error("Failed to finish trace file", "mode", mode, "path", tracePath, "error", err)
			res.Persisted = false
		}
	}

	if h.dumpPath != "" {
		if err := h.rec.Dump(h.dumpPath); err != nil {
			h.logger.Error("Failed to write sample dump", "path", h.dumpPath, "error", err)
		} else {
			res.DumpPath = h.dumpPath
		}
	}

	h.logger.Info("Benchmark complete",
		"mode", mode, "samples", res.Samples, "path", tracePath,
		"persisted", res.Persisted, "elapsed", time.Since(start).Round(time.Millisecond))
	return res, nil
}

// runOne times a single algorithm call on its own copy of in, so in-place
// sorts never see data already sorted by an earlier algorithm.
func (h *Harness) runOne(spec algorithmSpec, c Case, size int, in Input) {
	local := Input{Data: make([]int, len(in.Data)), Target: in.Target}
	copy(local.Data, in.Data)

	h.tracker.Begin(spec.name, string(c), size)

	func() {
		defer h.rec.Start(Label(spec.name, c, size), string(c)).Stop()
		spec.run(local, c, h.env())
	}()

	h.tracker.AddResult(ResultLabel(spec.name, c, size))
}

// Warmup executes the same matrix as Run without timing anything, so the
// recorder and progress tracker are left untouched.
func (h *Harness) Warmup(mode Mode, desc RunDescriptor) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	specs := algorithmsFor(mode)
	if len(specs) == 0 {
		return fmt.Errorf("unknown benchmark mode %q", mode)
	}

	h.logger.Info("Performing warmup runs", "mode", mode, "runs", desc.NumRuns)
	for _, size := range desc.Sizes() {
		for _, c := range Cases {
			in := inputFor(mode, c, size, h.rng)
			for _, spec := range specs {
				local := Input{Data: append([]int(nil), in.Data...), Target: in.Target}
				spec.run(local, c, h.env())
			}
		}
	}
	return nil
}
