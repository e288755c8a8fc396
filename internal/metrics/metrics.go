// Package metrics exposes Prometheus collectors for the fetch pipeline.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Runner mode label values.
const (
	ModeSequential = "sequential"
	ModeConcurrent = "concurrent"
)

var (
	fetchesTotal         *prometheus.CounterVec
	fetchDurationSeconds *prometheus.HistogramVec
	runDurationSeconds   *prometheus.HistogramVec
	activeWorkers        prometheus.Gauge

	once sync.Once
)

// Init initializes the Prometheus collectors. It is safe to call multiple
// times; only the first call registers anything.
func Init() {
	once.Do(func() {
		fetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wikiref_fetches_total",
				Help: "Total number of topic fetches, labeled by runner mode and outcome status.",
			},
			[]string{"mode", "status"},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wikiref_fetch_duration_seconds",
				Help:    "Histogram of per-topic fetch latencies, labeled by runner mode.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"mode"},
		)

		runDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wikiref_run_duration_seconds",
				Help:    "Histogram of whole-runner durations, labeled by runner mode.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"mode"},
		)

		activeWorkers = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "wikiref_active_workers",
				Help: "Number of worker goroutines with a fetch currently in flight.",
			},
		)
	})
}

// ObserveFetch records one completed topic fetch.
func ObserveFetch(mode, status string, elapsed time.Duration) {
	if fetchesTotal == nil {
		return
	}
	fetchesTotal.WithLabelValues(mode, status).Inc()
	fetchDurationSeconds.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// ObserveRun records the duration of a whole runner pass.
func ObserveRun(mode string, elapsed time.Duration) {
	if runDurationSeconds == nil {
		return
	}
	runDurationSeconds.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// WorkerStarted marks a worker as having a fetch in flight.
func WorkerStarted() {
	if activeWorkers != nil {
		activeWorkers.Inc()
	}
}

// WorkerFinished marks a worker's in-flight fetch as complete.
func WorkerFinished() {
	if activeWorkers != nil {
		activeWorkers.Dec()
	}
}

// Handler returns the HTTP handler serving the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
