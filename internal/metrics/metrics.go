// Package metrics exposes Prometheus instrumentation for solver
// invocations: how many ran, their outcome, and how long they took.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry wraps a private Prometheus registry with the solver-harness
// collectors, the same self-contained registration pattern as an embedded
// metrics service elsewhere in the example pack.
type Registry struct {
	registry     *prometheus.Registry
	handler      http.Handler
	solveTotal   *prometheus.CounterVec
	solveSeconds *prometheus.HistogramVec
}

// New registers the collectors and returns the wrapper.
func New() *Registry {
	registry := prometheus.NewRegistry()

	solveTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_solve_total",
		Help: "Total number of solver invocations by solver name and outcome",
	}, []string{"solver", "outcome"})

	solveSeconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_solve_duration_seconds",
		Help:    "Wall-clock duration of a solver invocation",
		Buckets: prometheus.DefBuckets,
	}, []string{"solver"})

	registry.MustRegister(solveTotal, solveSeconds)

	return &Registry{
		registry:     registry,
		handler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		solveTotal:   solveTotal,
		solveSeconds: solveSeconds,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// ObserveSolve records one solver invocation's outcome and elapsed time.
func (r *Registry) ObserveSolve(solverName, outcome string, elapsedSeconds float64) {
	if r == nil {
		return
	}
	r.solveTotal.WithLabelValues(solverName, outcome).Inc()
	r.solveSeconds.WithLabelValues(solverName).Observe(elapsedSeconds)
}
