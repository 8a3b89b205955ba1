package routes

import (
	"net/http"

	"github.com/waypost/waypost/pkg/middleware"
	pkgroutes "github.com/waypost/waypost/pkg/routes"
)

func init() {
	pkgroutes.Register("index.go", indexModule)
}

// indexModule serves the service banner at the root path. CORS runs as
// wildcard middleware so the OPTIONS preflight short-circuits before any
// handler.
func indexModule() (*pkgroutes.Builder, error) {
	cors := middleware.CORS(middleware.CORSConfig{
		Methods: []string{http.MethodGet, http.MethodOptions},
		Headers: []string{"Content-Type"},
	})

	b := pkgroutes.New(pkgroutes.WithMiddleware(pkgroutes.Wildcard, cors))

	if err := b.Get(func(c *pkgroutes.Request) (any, error) {
		return map[string]string{
			"service": "waypost",
			"status":  "running",
		}, nil
	}); err != nil {
		return nil, err
	}

	if err := b.Handle(http.MethodOptions, func(c *pkgroutes.Request) (any, error) {
		return &pkgroutes.Response{Status: http.StatusNoContent}, nil
	}); err != nil {
		return nil, err
	}

	return b, nil
}
