package router_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waypost/waypost/internal/metrics"
	"github.com/waypost/waypost/internal/router"
	"github.com/waypost/waypost/pkg/routes"
	"github.com/waypost/waypost/pkg/schema"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func assemble(t *testing.T, reg *routes.Registry, fixed map[string]http.Handler) *router.Dispatcher {
	t.Helper()

	table, err := router.Assemble(router.Config{
		Registry: reg,
		Fixed:    fixed,
		Logger:   testLogger(),
	})
	require.NoError(t, err)
	return router.NewDispatcher(table, testLogger(), nil)
}

func registryWith(t *testing.T, source string, build func(b *routes.Builder) error) *routes.Registry {
	t.Helper()

	reg := routes.NewRegistry()
	reg.Add(source, func() (*routes.Builder, error) {
		b := routes.New()
		if err := build(b); err != nil {
			return nil, err
		}
		return b, nil
	})
	return reg
}

func do(d *router.Dispatcher, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	d.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestDispatchUnknownPathIs404ForEveryMethod(t *testing.T) {
	reg := registryWith(t, "users.go", func(b *routes.Builder) error {
		return b.Get(func(c *routes.Request) (any, error) { return "ok", nil })
	})
	d := assemble(t, reg, nil)

	for _, method := range []string{"GET", "POST", "PUT", "DELETE", "PATCH"} {
		w := do(d, method, "/missing", "")
		assert.Equal(t, http.StatusNotFound, w.Code, method)
		assert.Equal(t, "Not found", decode(t, w)["error"], method)
	}
}

func TestDispatchUnknownMethodIs405(t *testing.T) {
	var mwRan, handlerRan bool

	reg := routes.NewRegistry()
	reg.Add("users.go", func() (*routes.Builder, error) {
		b := routes.New(routes.WithMiddleware(routes.Wildcard, func(c *routes.Request) routes.Verdict {
			mwRan = true
			return routes.Next()
		}))
		err := b.Get(func(c *routes.Request) (any, error) {
			handlerRan = true
			return "ok", nil
		})
		return b, err
	})
	d := assemble(t, reg, nil)

	w := do(d, http.MethodPost, "/users", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method Not Allowed", decode(t, w)["error"])
	assert.False(t, mwRan)
	assert.False(t, handlerRan)
}

func TestDispatchInvokesCompiledHandler(t *testing.T) {
	reg := registryWith(t, "users.go", func(b *routes.Builder) error {
		return b.Get(func(c *routes.Request) (any, error) {
			return map[string]string{"hello": "world"}, nil
		})
	})
	d := assemble(t, reg, nil)

	w := do(d, http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "world", decode(t, w)["hello"])
}

func TestDispatchCapturesPathParams(t *testing.T) {
	reg := registryWith(t, "users/_id.go", func(b *routes.Builder) error {
		return b.Get(func(c *routes.Request) (any, error) {
			return map[string]string{"id": c.Param("id")}, nil
		})
	})
	d := assemble(t, reg, nil)

	w := do(d, http.MethodGet, "/users/42", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", decode(t, w)["id"])
}

func TestDispatchValidationFailureIs400(t *testing.T) {
	type body struct {
		Message string `json:"message" validate:"required"`
	}

	reg := registryWith(t, "echo.go", func(b *routes.Builder) error {
		if err := b.Validate(http.MethodPost, schema.Set{Body: schema.For[body]()}); err != nil {
			return err
		}
		return b.Post(func(c *routes.Request) (any, error) {
			return c.Body.(body).Message, nil
		})
	})
	d := assemble(t, reg, nil)

	w := do(d, http.MethodPost, "/echo", `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Body validation failed", decode(t, w)["error"])

	w = do(d, http.MethodPost, "/echo", `{"message":"hi"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDispatchRecoverFromPanic(t *testing.T) {
	reg := registryWith(t, "boom.go", func(b *routes.Builder) error {
		return b.Get(func(c *routes.Request) (any, error) {
			panic("boom")
		})
	})
	d := assemble(t, reg, nil)

	w := do(d, http.MethodGet, "/boom", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decode(t, w)["error"])
}

func TestDispatchHandlerErrorIs500(t *testing.T) {
	reg := registryWith(t, "fail.go", func(b *routes.Builder) error {
		return b.Get(func(c *routes.Request) (any, error) {
			return nil, assert.AnError
		})
	})
	d := assemble(t, reg, nil)

	w := do(d, http.MethodGet, "/fail", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decode(t, w)["error"])
}

func TestDispatchSingleEntryIgnoresMethod(t *testing.T) {
	fixed := map[string]http.Handler{
		"/status": http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	}
	d := assemble(t, routes.NewRegistry(), fixed)

	for _, method := range []string{"GET", "POST", "DELETE"} {
		w := do(d, method, "/status", "")
		assert.Equal(t, http.StatusOK, w.Code, method)
	}
}

func TestDispatchWithMetricsRecorder(t *testing.T) {
	reg := registryWith(t, "users.go", func(b *routes.Builder) error {
		return b.Get(func(c *routes.Request) (any, error) { return "ok", nil })
	})

	table, err := router.Assemble(router.Config{
		Registry: reg,
		Logger:   testLogger(),
	})
	require.NoError(t, err)

	d := router.NewDispatcher(table, testLogger(), metrics.New())

	w := do(d, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAssembleSkipsBrokenModule(t *testing.T) {
	reg := routes.NewRegistry()
	reg.Add("broken.go", func() (*routes.Builder, error) {
		b := routes.New()
		if err := b.Get(func(c *routes.Request) (any, error) { return nil, nil }); err != nil {
			return nil, err
		}
		// Duplicate registration makes this module fail to build.
		return nil, b.Get(func(c *routes.Request) (any, error) { return nil, nil })
	})
	reg.Add("users.go", func() (*routes.Builder, error) {
		b := routes.New()
		return b, b.Get(func(c *routes.Request) (any, error) { return "ok", nil })
	})

	d := assemble(t, reg, nil)

	assert.Equal(t, http.StatusNotFound, do(d, http.MethodGet, "/broken", "").Code)
	assert.Equal(t, http.StatusOK, do(d, http.MethodGet, "/users", "").Code)
}

func TestAssembleFailsOnPatternCollision(t *testing.T) {
	reg := routes.NewRegistry()
	for _, source := range []string{"users.go", "users/index.go"} {
		reg.Add(source, func() (*routes.Builder, error) {
			b := routes.New()
			return b, b.Get(func(c *routes.Request) (any, error) { return nil, nil })
		})
	}

	_, err := router.Assemble(router.Config{Registry: reg, Logger: testLogger()})
	require.ErrorIs(t, err, router.ErrPatternCollision)
}

func TestAssembleSkipsEmptyModule(t *testing.T) {
	reg := routes.NewRegistry()
	reg.Add("empty.go", func() (*routes.Builder, error) {
		return routes.New(), nil
	})

	d := assemble(t, reg, nil)
	assert.Equal(t, http.StatusNotFound, do(d, http.MethodGet, "/empty", "").Code)
}
