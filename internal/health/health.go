// Package health provides the fixed liveness and readiness endpoints.
package health

import (
	"net/http"
	"time"

	"github.com/waypost/waypost/pkg/handlers"
)

// Handler serves the operational health endpoints. Uptime is measured from
// construction, which happens before table assembly, so `up` never
// decreases within one process lifetime.
type Handler struct {
	started time.Time
}

// NewHandler creates a health handler anchored at the current time.
func NewHandler() *Handler {
	return &Handler{started: time.Now()}
}

// Live responds with the liveness payload: status, epoch-millisecond
// timestamp, and whole seconds of uptime.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ts":     time.Now().UnixMilli(),
		"up":     int64(time.Since(h.started).Seconds()),
	})
}

// Ready responds with the readiness payload. The table is assembled before
// the server binds, so a served request implies readiness.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"ts":     time.Now().UnixMilli(),
	})
}
