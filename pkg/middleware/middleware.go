// Package middleware provides stock middleware for route definitions.
// Each middleware returns a verdict: continue, forbid, or short-circuit
// with a response.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/waypost/waypost/pkg/routes"
)

// RequestID assigns each request an identifier, honoring an inbound
// X-Request-ID header when present. The identifier is echoed on the
// response and available to later middleware and the handler.
func RequestID() routes.Middleware {
	return func(c *routes.Request) routes.Verdict {
		id := c.HTTP.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.SetID(id)
		return routes.Next()
	}
}

// AccessLog logs each request before it reaches the handler.
func AccessLog(logger *slog.Logger) routes.Middleware {
	return func(c *routes.Request) routes.Verdict {
		logger.Info(
			"request",
			"method", c.HTTP.Method,
			"path", c.HTTP.URL.Path,
			"request_id", c.ID(),
		)
		return routes.Next()
	}
}

// MaxBody rejects requests whose declared body size exceeds the limit in
// bytes with a 413 response. Requests without a Content-Length header
// pass through; the server-level byte limit still applies to them.
func MaxBody(limit int64) routes.Middleware {
	return func(c *routes.Request) routes.Verdict {
		if c.HTTP.ContentLength > limit {
			return routes.Halt(routes.JSON(http.StatusRequestEntityTooLarge, map[string]string{
				"error": "Request Entity Too Large",
			}))
		}
		return routes.Next()
	}
}
