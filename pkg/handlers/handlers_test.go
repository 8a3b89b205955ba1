package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waypost/waypost/pkg/handlers"
	"github.com/waypost/waypost/pkg/routes"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondJSON(w, http.StatusCreated, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "1", decode(t, w)["id"])
}

func TestRespondErrorLogsAndWrites(t *testing.T) {
	var log bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&log, nil))

	w := httptest.NewRecorder()
	handlers.RespondError(w, logger, http.StatusInternalServerError,
		"Internal Server Error", errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decode(t, w)["error"])
	assert.Contains(t, log.String(), "request error")
	assert.Contains(t, log.String(), "boom")
}

func TestWriteResponse(t *testing.T) {
	w := httptest.NewRecorder()
	resp := routes.JSON(http.StatusAccepted, map[string]string{"state": "queued"})
	resp.Set("X-Custom", "yes")

	handlers.WriteResponse(w, resp)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "yes", w.Header().Get("X-Custom"))
	assert.Equal(t, "queued", decode(t, w)["state"])
}

func TestWriteResponseDefaultsAndEmptyBody(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.WriteResponse(w, &routes.Response{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
