package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medexplain/internal/observability/metrics"
)

// counterValue finds the counter sample for name whose labels include want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, metric := range mf.GetMetric() {
			got := map[string]string{}
			for _, lp := range metric.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if got[k] != v {
					continue next
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s %v not found", name, want)
	return 0
}

func TestObserveLLM(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveLLM("gemini", "interaction", time.Second, nil)
	m.ObserveLLM("gemini", "interaction", time.Second, errors.New("boom"))

	assert.Equal(t, 1.0, counterValue(t, reg, "medexplain_llm_requests_total", map[string]string{"outcome": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "medexplain_llm_requests_total", map[string]string{"outcome": "error"}))
}

func TestObserveMatrix(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveMatrix(4, 1, time.Second, nil)

	assert.Equal(t, 1.0, counterValue(t, reg, "medexplain_matrix_runs_total", map[string]string{"outcome": "ok"}))
	assert.Equal(t, 3.0, counterValue(t, reg, "medexplain_matrix_pairs_total", map[string]string{"outcome": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "medexplain_matrix_pairs_total", map[string]string{"outcome": "error"}))
}

func TestNilMetrics_NoPanic(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObserveLLM("claude", "summary", time.Second, nil)
		m.ObserveMatrix(1, 0, time.Second, nil)
		m.ObserveInteraction("High")
		m.SessionCreated()
		m.SessionsSwept(2)
		m.ObserveHTTP("GET", "/healthz", 200, time.Millisecond)
		m.SetBreakerState("claude", 1)
	})
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.SessionCreated()

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "medexplain_sessions_created_total 1")
}
