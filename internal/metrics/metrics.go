package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes Prometheus metrics for inbound HTTP requests and for the
// reconciliation engine.
type Collector struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	reconcileDuration prometheus.Histogram
	walksMatched      prometheus.Counter
	driftUpdates      prometheus.Counter
	mediaBackfills    prometheus.Counter
	unlinks           prometheus.Counter
	writeFailures     prometheus.Counter
}

// NewCollector constructs a collector with default histograms/counters.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "walksync",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walksync",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})

	reconcileDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "walksync",
		Subsystem: "reconcile",
		Name:      "pass_duration_seconds",
		Help:      "Duration of full reconciliation passes.",
		Buckets:   prometheus.DefBuckets,
	})

	walksMatched := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walksync",
		Subsystem: "reconcile",
		Name:      "walks_matched_total",
		Help:      "Local walks matched to remote summaries.",
	})

	driftUpdates := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walksync",
		Subsystem: "reconcile",
		Name:      "drift_updates_total",
		Help:      "Walks whose remote linkage was repaired.",
	})

	mediaBackfills := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walksync",
		Subsystem: "reconcile",
		Name:      "media_backfills_total",
		Help:      "Walks that received media copied from their remote record.",
	})

	unlinks := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walksync",
		Subsystem: "reconcile",
		Name:      "unlinks_total",
		Help:      "Walks whose remote linkage was cleared after the remote record disappeared.",
	})

	writeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "walksync",
		Subsystem: "reconcile",
		Name:      "write_failures_total",
		Help:      "Individual persistence writes that failed during reconciliation.",
	})

	collectors := []prometheus.Collector{
		requestDuration, requestTotal,
		reconcileDuration, walksMatched, driftUpdates, mediaBackfills, unlinks, writeFailures,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:          registry,
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		reconcileDuration: reconcileDuration,
		walksMatched:      walksMatched,
		driftUpdates:      driftUpdates,
		mediaBackfills:    mediaBackfills,
		unlinks:           unlinks,
		writeFailures:     writeFailures,
	}, nil
}

// ObserveReconcilePass records the outcome of one reconciliation pass.
func (c *Collector) ObserveReconcilePass(duration time.Duration, matched, drift, backfills, unlinks, failures int) {
	c.reconcileDuration.Observe(duration.Seconds())
	c.walksMatched.Add(float64(matched))
	c.driftUpdates.Add(float64(drift))
	c.mediaBackfills.Add(float64(backfills))
	c.unlinks.Add(float64(unlinks))
	c.writeFailures.Add(float64(failures))
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler to record HTTP metrics.
func (c *Collector) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.status)
		path := r.URL.Path

		c.requestTotal.WithLabelValues(r.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
