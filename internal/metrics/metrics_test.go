package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waypost/waypost/internal/metrics"
)

func TestRecordAndExpose(t *testing.T) {
	m := metrics.New()

	m.Record("/users/:id", http.MethodGet, http.StatusOK, 25*time.Millisecond)
	m.Record("/users/:id", http.MethodGet, http.StatusOK, 50*time.Millisecond)
	m.Record("/users/:id", http.MethodPut, http.StatusBadRequest, 5*time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, `waypost_requests_total{method="GET",pattern="/users/:id",status="200"} 2`)
	assert.Contains(t, body, `waypost_requests_total{method="PUT",pattern="/users/:id",status="400"} 1`)
	assert.Contains(t, body, "waypost_request_duration_seconds_bucket")
}

func TestSeparateRegistries(t *testing.T) {
	a := metrics.New()
	b := metrics.New()

	a.Record("/health", http.MethodGet, http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	b.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.NotContains(t, w.Body.String(), `pattern="/health"`)
}
