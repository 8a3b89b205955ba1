package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/waypost/waypost/pkg/routes"
)

// CORSConfig holds cross-origin resource sharing settings.
type CORSConfig struct {
	Origins     []string `toml:"origins"`
	Methods     []string `toml:"methods"`
	Headers     []string `toml:"headers"`
	Credentials bool     `toml:"credentials"`
}

// CORS applies cross-origin headers and short-circuits preflight OPTIONS
// requests with an empty 200 response.
func CORS(cfg CORSConfig) routes.Middleware {
	return func(c *routes.Request) routes.Verdict {
		header := c.Header()

		if len(cfg.Origins) > 0 {
			origin := c.HTTP.Header.Get("Origin")
			if slices.Contains(cfg.Origins, origin) {
				header.Set("Access-Control-Allow-Origin", origin)
			}
		}

		if len(cfg.Methods) > 0 {
			header.Set("Access-Control-Allow-Methods", strings.Join(cfg.Methods, ", "))
		}

		if len(cfg.Headers) > 0 {
			header.Set("Access-Control-Allow-Headers", strings.Join(cfg.Headers, ", "))
		}

		if cfg.Credentials {
			header.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.HTTP.Method == http.MethodOptions {
			return routes.Halt(&routes.Response{Status: http.StatusOK})
		}

		return routes.Next()
	}
}
