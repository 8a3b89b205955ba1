package routes

import (
	"net/http"

	"github.com/waypost/waypost/pkg/middleware"
	pkgroutes "github.com/waypost/waypost/pkg/routes"
	"github.com/waypost/waypost/pkg/schema"
)

func init() {
	pkgroutes.Register("echo.go", echoModule)
}

// EchoCommand is the validated POST /echo body.
type EchoCommand struct {
	Message string `json:"message" validate:"required"`
}

// echoModule demonstrates the middleware chain: request ids for every
// method, a tighter body cap on POST only, and validation after both.
func echoModule() (*pkgroutes.Builder, error) {
	b := pkgroutes.New(
		pkgroutes.WithMiddleware(pkgroutes.Wildcard, middleware.RequestID()),
		pkgroutes.WithMiddleware(http.MethodPost, middleware.MaxBody(64*1024)),
	)

	if err := b.Get(func(c *pkgroutes.Request) (any, error) {
		return map[string]string{
			"method":     c.HTTP.Method,
			"path":       c.HTTP.URL.Path,
			"request_id": c.ID(),
		}, nil
	}); err != nil {
		return nil, err
	}

	if err := b.Validate(http.MethodPost, schema.Set{
		Body: schema.For[EchoCommand](),
	}); err != nil {
		return nil, err
	}

	if err := b.Post(func(c *pkgroutes.Request) (any, error) {
		return map[string]string{
			"message":    c.Body.(EchoCommand).Message,
			"request_id": c.ID(),
		}, nil
	}); err != nil {
		return nil, err
	}

	return b, nil
}
