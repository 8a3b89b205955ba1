package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waypost/waypost/internal/health"
)

func get(t *testing.T, handler http.HandlerFunc) map[string]any {
	t.Helper()

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLive(t *testing.T) {
	h := health.NewHandler()
	body := get(t, h.Live)

	assert.Equal(t, "ok", body["status"])
	assert.InDelta(t, time.Now().UnixMilli(), body["ts"].(float64), 5000)
	assert.GreaterOrEqual(t, body["up"].(float64), 0.0)
}

func TestLiveUptimeNonDecreasing(t *testing.T) {
	h := health.NewHandler()

	prev := -1.0
	for i := 0; i < 3; i++ {
		up := get(t, h.Live)["up"].(float64)
		assert.GreaterOrEqual(t, up, prev)
		prev = up
	}
}

func TestReady(t *testing.T) {
	h := health.NewHandler()
	body := get(t, h.Ready)

	assert.Equal(t, "ready", body["status"])
	assert.Contains(t, body, "ts")
	assert.NotContains(t, body, "up")
}
