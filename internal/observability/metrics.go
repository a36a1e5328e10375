package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	candidatesDiscovered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quilt",
			Subsystem: "discovery",
			Name:      "candidates_total",
			Help:      "Mod candidates discovered, by provenance.",
		},
		[]string{"provenance"},
	)
	sourceErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quilt",
			Subsystem: "discovery",
			Name:      "source_errors_total",
			Help:      "Recoverable per-source discovery errors.",
		},
		[]string{"kind"},
	)
	modsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "quilt",
			Subsystem: "loader",
			Name:      "mods_active",
			Help:      "Mods admitted to the active set by the last load.",
		},
	)
	loadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "quilt",
			Subsystem: "loader",
			Name:      "load_duration_seconds",
			Help:      "Full load pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	loadFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quilt",
			Subsystem: "loader",
			Name:      "load_failures_total",
			Help:      "Fatal load aborts, by reason.",
		},
		[]string{"reason"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(candidatesDiscovered, sourceErrors, modsActive, loadDuration, loadFailures)
	})
}

func RecordCandidates(provenance string, count int) {
	RegisterMetrics()
	candidatesDiscovered.WithLabelValues(provenance).Add(float64(count))
}

func RecordSourceError(kind string) {
	RegisterMetrics()
	sourceErrors.WithLabelValues(kind).Inc()
}

func RecordLoad(active int, duration time.Duration) {
	RegisterMetrics()
	modsActive.Set(float64(active))
	loadDuration.Observe(duration.Seconds())
}

func RecordLoadFailure(reason string) {
	RegisterMetrics()
	loadFailures.WithLabelValues(reason).Inc()
}
