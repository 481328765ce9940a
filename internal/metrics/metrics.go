// Package metrics exposes engine activity as Prometheus collectors.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"palette/internal/engine"
	"palette/internal/scheduler"
)

// Namespace prefixes every metric name
const Namespace = "palette"

// Recorder implements engine.Recorder on top of Prometheus collectors
type Recorder struct {
	recomputes   *prometheus.CounterVec
	emits        prometheus.Counter
	listeners    prometheus.Histogram
	flushes      prometheus.Counter
	flushActions prometheus.Histogram
	flushSeconds prometheus.Histogram
	scheduled    *prometheus.CounterVec
	replaced     *prometheus.CounterVec
	scorerFaults prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

var _ engine.Recorder = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them with reg
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "recomputes_total",
			Help:      "Filter and sort recomputations",
		}, []string{"kind"}),
		emits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "emits_total",
			Help:      "Snapshots published to subscribers",
		}),
		listeners: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "emit_listeners",
			Help:      "Subscribers notified per emit",
			Buckets:   []float64{0, 1, 2, 4, 8, 16},
		}),
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "flushes_total",
			Help:      "Scheduler flushes that ran at least one action",
		}),
		flushActions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "flush_actions",
			Help:      "Deferred actions executed per flush",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 7},
		}),
		flushSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "flush_duration_seconds",
			Help:      "Flush duration in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		scheduled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "scheduled_total",
			Help:      "Deferred actions scheduled per slot",
		}, []string{"slot"}),
		replaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "coalesced_total",
			Help:      "Scheduled actions that replaced a pending one",
		}, []string{"slot"}),
		scorerFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "scorer_faults_total",
			Help:      "Scorer calls that panicked or returned an invalid number",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "path", "status"}),
	}

	for _, c := range []prometheus.Collector{
		r.recomputes, r.emits, r.listeners, r.flushes, r.flushActions,
		r.flushSeconds, r.scheduled, r.replaced, r.scorerFaults,
		r.httpRequests, r.httpDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return r, nil
}

func (r *Recorder) Recomputed(kind string) {
	r.recomputes.WithLabelValues(kind).Inc()
}

func (r *Recorder) Emitted(listeners int) {
	r.emits.Inc()
	r.listeners.Observe(float64(listeners))
}

func (r *Recorder) Flushed(actions int, duration time.Duration) {
	r.flushes.Inc()
	r.flushActions.Observe(float64(actions))
	r.flushSeconds.Observe(duration.Seconds())
}

func (r *Recorder) Scheduled(slot scheduler.Slot, replaced bool) {
	name := engine.SlotName(slot)
	r.scheduled.WithLabelValues(name).Inc()
	if replaced {
		r.replaced.WithLabelValues(name).Inc()
	}
}

func (r *Recorder) ScorerFault() {
	r.scorerFaults.Inc()
}

// Middleware records HTTP request duration and count
func (r *Recorder) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, req)

			status := strconv.Itoa(ww.status)
			path := "unknown"
			if rctx := chi.RouteContext(req.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			r.httpDuration.WithLabelValues(req.Method, path, status).Observe(time.Since(start).Seconds())
			r.httpRequests.WithLabelValues(req.Method, path, status).Inc()
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}
