// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across the
// dispatcher and the fixed operational endpoints.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/waypost/waypost/pkg/routes"
)

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes a JSON error response.
// The response body contains {"error": "<message>"}.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string, err error) {
	logger.Error("request error", "error", err, "status", status)
	RespondJSON(w, status, map[string]string{"error": message})
}

// WriteResponse writes a compiled route response: headers first, then the
// status (200 when unset), then the body serialized as JSON when present.
func WriteResponse(w http.ResponseWriter, resp *routes.Response) {
	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	if resp.Body == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp.Body)
}
