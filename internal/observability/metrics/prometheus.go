// Package metrics provides Prometheus metrics for the medexplain API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	LLMRequests         *prometheus.CounterVec
	LLMDuration         *prometheus.HistogramVec
	MatrixRuns          *prometheus.CounterVec
	MatrixPairs         *prometheus.CounterVec
	MatrixDuration      prometheus.Histogram
	InteractionsFound   *prometheus.CounterVec
	SessionsCreated     prometheus.Counter
	SessionsExpired     prometheus.Counter
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	CircuitBreakerState *prometheus.GaugeVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LLMRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medexplain_llm_requests_total",
			Help: "Total requests sent to LLM providers",
		}, []string{"provider", "task", "outcome"}),
		LLMDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medexplain_llm_request_duration_seconds",
			Help:    "LLM provider request duration",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"provider", "task"}),
		MatrixRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medexplain_matrix_runs_total",
			Help: "Total interaction matrix runs",
		}, []string{"outcome"}),
		MatrixPairs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medexplain_matrix_pairs_total",
			Help: "Total medication-food pairs checked",
		}, []string{"outcome"}),
		MatrixDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "medexplain_matrix_duration_seconds",
			Help:    "Interaction matrix run duration",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
		InteractionsFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medexplain_interactions_found_total",
			Help: "Interaction statements found, by severity",
		}, []string{"severity"}),
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medexplain_sessions_created_total",
			Help: "Total sessions created",
		}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medexplain_sessions_expired_total",
			Help: "Total sessions removed by the sweeper",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medexplain_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medexplain_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CircuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "medexplain_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		}, []string{"name"}),
	}

	reg.MustRegister(
		m.LLMRequests,
		m.LLMDuration,
		m.MatrixRuns,
		m.MatrixPairs,
		m.MatrixDuration,
		m.InteractionsFound,
		m.SessionsCreated,
		m.SessionsExpired,
		m.HTTPRequests,
		m.HTTPDuration,
		m.CircuitBreakerState,
	)

	return m
}

// ObserveLLM records one provider call.
func (m *Metrics) ObserveLLM(provider, task string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.LLMRequests.WithLabelValues(provider, task, outcome(err)).Inc()
	m.LLMDuration.WithLabelValues(provider, task).Observe(elapsed.Seconds())
}

// ObserveMatrix records one matrix run.
func (m *Metrics) ObserveMatrix(checked, failed int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.MatrixRuns.WithLabelValues(outcome(err)).Inc()
	m.MatrixPairs.WithLabelValues("ok").Add(float64(checked - failed))
	m.MatrixPairs.WithLabelValues("error").Add(float64(failed))
	m.MatrixDuration.Observe(elapsed.Seconds())
}

// ObserveInteraction counts one classified interaction statement.
func (m *Metrics) ObserveInteraction(severity string) {
	if m == nil {
		return
	}
	m.InteractionsFound.WithLabelValues(severity).Inc()
}

// SessionCreated counts a new session.
func (m *Metrics) SessionCreated() {
	if m == nil {
		return
	}
	m.SessionsCreated.Inc()
}

// SessionsSwept counts sessions removed by the sweeper.
func (m *Metrics) SessionsSwept(n int) {
	if m == nil {
		return
	}
	m.SessionsExpired.Add(float64(n))
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SetBreakerState records a circuit breaker transition.
func (m *Metrics) SetBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Handler returns the Prometheus HTTP handler for g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
