package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/v1/listings", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/listings", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/listings", "200")))
}

func TestDomainCounters(t *testing.T) {
	m := New()

	m.FavoriteToggled(true)
	m.FavoriteToggled(true)
	m.FavoriteToggled(false)
	m.Submission("inquiry", "success")
	m.Limited()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FavoriteToggles.WithLabelValues("added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FavoriteToggles.WithLabelValues("removed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("inquiry", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/", 200, time.Millisecond)
		m.FavoriteToggled(true)
		m.Submission("contact", "failed")
		m.Limited()
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.Submission("contact", "success")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `homescout_submissions_total{kind="contact",outcome="success"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
