package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/waypost/waypost/internal/metrics"
	"github.com/waypost/waypost/pkg/handlers"
	"github.com/waypost/waypost/pkg/routes"
)

// catchAllPattern labels requests that fell through to the 404 handler.
const catchAllPattern = "*"

// Dispatcher resolves inbound requests against a frozen table and invokes
// the compiled method handler, enforcing the not-found and
// method-not-allowed fallbacks. It performs no retries and no buffering.
type Dispatcher struct {
	table   *Table
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewDispatcher creates the request dispatcher for an assembled table.
// The metrics recorder may be nil.
func NewDispatcher(table *Table, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{table: table, logger: logger, metrics: m}
}

// ServeHTTP implements the outermost request boundary: nothing below it
// escapes as a panic, and every request terminates in exactly one response.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	pattern := catchAllPattern

	defer func() {
		if p := recover(); p != nil {
			handlers.RespondError(rec, d.logger, http.StatusInternalServerError,
				"Internal Server Error", fmt.Errorf("panic serving %s: %v", r.URL.Path, p))
		}
		if d.metrics != nil {
			d.metrics.Record(pattern, r.Method, rec.status, time.Since(start))
		}
	}()

	e, params := d.table.resolve(r.URL.Path)
	if e == nil {
		d.table.catchAll.ServeHTTP(rec, r)
		return
	}
	pattern = e.pattern

	if e.single != nil {
		e.single.ServeHTTP(rec, r)
		return
	}

	compiled, ok := e.methods[strings.ToUpper(r.Method)]
	if !ok {
		handlers.RespondJSON(rec, http.StatusMethodNotAllowed, map[string]string{
			"error": "Method Not Allowed",
		})
		return
	}

	c := &routes.Request{HTTP: r, PathParams: params}
	resp, err := compiled(c)
	if err != nil {
		d.logger.Error(
			"handler error",
			"pattern", e.pattern,
			"method", r.Method,
			"error", err,
		)
	}
	handlers.WriteResponse(rec, resp)
}

// statusRecorder captures the written status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
