package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"algobench/internal/config"
	"algobench/internal/harness"
	"algobench/internal/metrics"
	"algobench/internal/profiler"
	"algobench/internal/progress"
	"algobench/internal/telemetry"
	"algobench/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// ErrAborted is returned when the dashboard is closed before the run ends.
var ErrAborted = errors.New("benchmark aborted")

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark [sorting|searching|all]",
	Short: "Run the benchmarks and write trace files",
	Long: `Runs every algorithm of the selected mode over the configured size
progression and all three case types, writing one trace file per mode.

Sizes run from --initial-size in steps of --increment for --runs terms.
With --warmup the same matrix is executed once untimed beforehand.`,
	Example: `  algobench benchmark sorting --runs 5 --initial-size 1000 --increment 2000
  algobench benchmark --tui --metrics-addr 127.0.0.1:2112`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"sorting", "searching", "all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "all"
		if len(args) > 0 {
			target = args[0]
		}
		modes, err := parseTarget(target)
		if err != nil {
			return err
		}
		useTUI, _ := cmd.Flags().GetBool("tui")
		return runBenchmark(cmd, modes, useTUI)
	},
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)
	f := benchmarkCmd.Flags()
	f.Int("runs", 50, "Number of input sizes per mode")
	f.Int("initial-size", 1000, "Size of the first input")
	f.Int("increment", 2000, "Size step between consecutive runs")
	f.Bool("warmup", true, "Execute an untimed warmup pass first")
	f.String("pivot", "random", "Quick sort pivot for best and average cases: first, last or random")
	f.Bool("tui", false, "Show the live progress dashboard")
	f.String("metrics-addr", "", "Serve Prometheus metrics on host:port while running")
	f.String("dump", "", "Also write every sample of the run to this trace file")
}

func parseTarget(s string) ([]harness.Mode, error) {
	if s == "all" {
		return harness.Modes, nil
	}
	mode, err := harness.ParseMode(s)
	if err != nil {
		return nil, err
	}
	return []harness.Mode{mode}, nil
}

// benchmarkRun holds everything one invocation wires together.
type benchmarkRun struct {
	settings config.Settings
	metrics  *metrics.Metrics
	rec      *profiler.Recorder
	harness  *harness.Harness
	tracker  *progress.Tracker
}

func newBenchmarkRun(settings config.Settings) *benchmarkRun {
	m := metrics.NewMetrics()
	tracker := progress.NewTracker()
	tracker.OnChange(m.ObserveProgress)

	rec := profiler.NewRecorder(profiler.WithObserver(m), profiler.WithLogger(slog.Default()))
	opts := []harness.Option{
		harness.WithTracker(tracker),
		harness.WithPivot(settings.Pivot),
		harness.WithLogger(slog.Default()),
	}
	if settings.DumpPath != "" {
		opts = append(opts, harness.WithDumpPath(settings.DumpPath))
	}
	return &benchmarkRun{
		settings: settings,
		metrics:  m,
		rec:      rec,
		harness:  harness.New(rec, opts...),
		tracker:  tracker,
	}
}

// execute runs warmup and the timed benchmark for each mode in turn.
// onMode, if set, is called before a mode starts.
func (b *benchmarkRun) execute(modes []harness.Mode, onMode func(harness.Mode)) ([]harness.Result, error) {
	var results []harness.Result
	for _, mode := range modes {
		if onMode != nil {
			onMode(mode)
		}
		if b.settings.WarmupEnabled {
			if err := b.harness.Warmup(mode, b.settings.Warmup); err != nil {
				return results, fmt.Errorf("warmup for %s failed: %w", mode, err)
			}
		}
		res, err := b.harness.Run(mode, b.settings.Run, b.settings.TracePath(mode))
		if err != nil {
			return results, fmt.Errorf("%s benchmark failed: %w", mode, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func runBenchmark(cmd *cobra.Command, modes []harness.Mode, useTUI bool) error {
	settings := config.Current()
	if useTUI {
		// The dashboard owns the terminal.
		telemetry.InitLogger(settings.Verbose, settings.LogFile, true)
	}

	b := newBenchmarkRun(settings)
	defer b.rec.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if settings.MetricsAddr != "" {
		addr, err := startMetricsServer(ctx, settings.MetricsAddr, b.metrics)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Serving metrics on http://%s/metrics\n", addr)
	}

	var (
		results []harness.Result
		err     error
	)
	if useTUI {
		results, err = b.executeWithDashboard(cmd, modes)
	} else {
		results, err = b.execute(modes, func(mode harness.Mode) {
			fmt.Fprintf(cmd.OutOrStdout(), "Running %s...\n", mode.SessionName())
		})
	}
	if err != nil {
		return err
	}
	printResults(cmd.OutOrStdout(), results)
	return nil
}

func (b *benchmarkRun) executeWithDashboard(cmd *cobra.Command, modes []harness.Mode) ([]harness.Result, error) {
	model := ui.NewProgressModel(b.tracker, modes[0].SessionName())
	p := tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))

	var (
		results []harness.Result
		runErr  error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		results, runErr = b.execute(modes, func(mode harness.Mode) {
			p.Send(ui.ModeStartedMsg{Title: mode.SessionName()})
		})
		p.Send(ui.BenchmarkDoneMsg{Err: runErr})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress dashboard failed: %w", err)
	}
	if pm, ok := final.(ui.ProgressModel); ok && pm.Aborted {
		return nil, b.abort()
	}
	<-done
	return results, runErr
}

// abort closes the open trace where the run stands. The harness goroutine is
// not waited for; its later samples stay in memory and are never written.
func (b *benchmarkRun) abort() error {
	session, err := b.rec.SessionInfo()
	if err != nil {
		slog.Warn("Benchmark aborted between sessions")
		return ErrAborted
	}
	written := b.rec.SessionCount()
	if err := b.rec.Close(); err != nil {
		slog.Error("Failed to close aborted trace", "session", session.Name, "path", session.Path, "error", err)
	}
	slog.Warn("Benchmark aborted, trace cut short",
		"session", session.Name, "path", session.Path, "samples", written)
	return fmt.Errorf("%w: %s holds %d samples", ErrAborted, session.Path, written)
}

// startMetricsServer serves m until ctx is done and returns the bound address.
func startMetricsServer(ctx context.Context, addr string, m *metrics.Metrics) (string, error) {
	ready := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- telemetry.ServeMetrics(ctx, addr, m.Handler(), ready)
	}()

	select {
	case bound := <-ready:
		go func() {
			if err := <-errCh; err != nil {
				slog.Error("Metrics server stopped", "addr", bound, "error", err)
			}
		}()
		return bound, nil
	case err := <-errCh:
		return "", fmt.Errorf("failed to start metrics server on %s: %w", addr, err)
	}
}

func printResults(w io.Writer, results []harness.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tSIZES\tSAMPLES\tTRACE\tSTATUS")
	for _, r := range results {
		status := "written"
		if !r.Persisted {
			status = "memory only"
		}
		sizes := "-"
		if n := len(r.Sizes); n > 0 {
			sizes = fmt.Sprintf("%d..%d", r.Sizes[0], r.Sizes[n-1])
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.Mode, sizes, r.Samples, r.TracePath, status)
	}
	tw.Flush()

	for _, r := range results {
		if r.DumpPath != "" {
			fmt.Fprintf(w, "Sample dump: %s\n", r.DumpPath)
			break
		}
	}
}
