package metrics

import (
	"net/http"
	"strconv"
	"time"

	"algobench/internal/profiler"
	"algobench/internal/progress"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "algobench"

// Metrics represents the collection of all Prometheus metrics. It implements
// profiler.Observer, so a Recorder built WithObserver(m) feeds it directly.
type Metrics struct {
	registry *prometheus.Registry

	// Standard metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Profiler metrics
	SamplesRecorded *prometheus.CounterVec
	SampleDuration  *prometheus.HistogramVec
	SessionsActive  prometheus.Gauge
	SessionsEnded   prometheus.Counter
	SessionSamples  *prometheus.GaugeVec
	WriteFailures   *prometheus.CounterVec

	// Harness metrics
	RunsCompleted prometheus.Gauge
	RunsTotal     prometheus.Gauge
	RunProgress   prometheus.Gauge
	CurrentSize   prometheus.Gauge
}

var _ profiler.Observer = (*Metrics)(nil)

// NewMetrics creates all metrics on a private registry, alongside the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests to the metrics endpoint",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.SamplesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_recorded_total",
			Help:      "Total number of timing samples recorded",
		},
		[]string{"category"},
	)

	m.SampleDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sample_duration_microseconds",
			Help:      "Duration of recorded samples in microseconds",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		},
		[]string{"category"},
	)

	m.SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of open profiling sessions (0 or 1)",
		},
	)

	m.SessionsEnded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_ended_total",
			Help:      "Total number of profiling sessions closed",
		},
	)

	m.SessionSamples = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_samples",
			Help:      "Samples written by the most recent session of each name",
		},
		[]string{"session"},
	)

	m.WriteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trace_write_failures_total",
			Help:      "Total number of trace I/O failures",
		},
		[]string{"op"},
	)

	m.RunsCompleted = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "runs_completed",
			Help:      "Timed regions started in the current benchmark mode",
		},
	)

	m.RunsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Timed regions planned for the current benchmark mode",
		},
	)

	m.RunProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_progress_ratio",
			Help:      "Fraction of the current benchmark mode completed",
		},
	)

	m.CurrentSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_input_size",
			Help:      "Input size of the algorithm call in progress",
		},
	)

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SamplesRecorded,
		m.SampleDuration,
		m.SessionsActive,
		m.SessionsEnded,
		m.SessionSamples,
		m.WriteFailures,
		m.RunsCompleted,
		m.RunsTotal,
		m.RunProgress,
		m.CurrentSize,
	)

	return m
}

// Registry exposes the registry for gathering in tests and embedding.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) SampleRecorded(s profiler.Sample) {
	m.SamplesRecorded.WithLabelValues(s.Category).Inc()
	m.SampleDuration.WithLabelValues(s.Category).Observe(float64(s.Duration()))
}

func (m *Metrics) SessionStarted(string) {
	m.SessionsActive.Set(1)
}

func (m *Metrics) SessionEnded(name string, samples int) {
	m.SessionsActive.Set(0)
	m.SessionsEnded.Inc()
	m.SessionSamples.WithLabelValues(name).Set(float64(samples))
}

func (m *Metrics) WriteFailed(op string, _ error) {
	m.WriteFailures.WithLabelValues(op).Inc()
}

// ObserveProgress mirrors a tracker snapshot; pass it to Tracker.OnChange.
func (m *Metrics) ObserveProgress(s progress.Snapshot) {
	m.RunsCompleted.Set(float64(s.CurrentRun))
	m.RunsTotal.Set(float64(s.TotalRuns))
	m.RunProgress.Set(s.Fraction)
	m.CurrentSize.Set(float64(s.Size))
}

// Middleware for tracking HTTP requests
func (m *Metrics) RequestTrackingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// responseWriter is a wrapper to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Handler returns the Prometheus HTTP handler for this registry, with
// request tracking applied.
func (m *Metrics) Handler() http.Handler {
	return m.RequestTrackingMiddleware(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
