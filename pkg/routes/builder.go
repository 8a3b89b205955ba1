package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/waypost/waypost/pkg/schema"
)

// Methods a builder accepts handlers for.
var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
}

// Wildcard targets every method when used as a middleware key.
const Wildcard = "*"

// Builder accumulates per-method handlers, middleware, and validation
// schemas for one endpoint, then compiles them into a method→handler table.
// Builders are configured once at startup and are not safe for concurrent
// mutation.
type Builder struct {
	wildcard   []Middleware
	middleware map[string][]Middleware
	validation map[string]Middleware
	handlers   map[string]Handler
}

// Option configures a builder at construction time.
type Option func(*Builder)

// WithMiddleware attaches default middleware to a method, or to every
// method when the Wildcard key is used. Wildcard middleware runs before
// method-specific middleware, which runs before validation middleware.
func WithMiddleware(method string, mw ...Middleware) Option {
	return func(b *Builder) {
		if method == Wildcard {
			b.wildcard = append(b.wildcard, mw...)
			return
		}
		m := strings.ToUpper(method)
		b.middleware[m] = append(b.middleware[m], mw...)
	}
}

// New creates a route builder for one endpoint.
func New(opts ...Option) *Builder {
	b := &Builder{
		middleware: make(map[string][]Middleware),
		validation: make(map[string]Middleware),
		handlers:   make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Handle registers the handler for a method. Registering a second handler
// for the same method returns ErrDuplicateHandler; the first stays intact.
func (b *Builder) Handle(method string, h Handler) error {
	m := strings.ToUpper(method)
	if _, exists := b.handlers[m]; exists {
		return fmt.Errorf("%s: %w", m, ErrDuplicateHandler)
	}
	b.handlers[m] = h
	return nil
}

// Get registers a GET handler.
func (b *Builder) Get(h Handler) error { return b.Handle(http.MethodGet, h) }

// Post registers a POST handler.
func (b *Builder) Post(h Handler) error { return b.Handle(http.MethodPost, h) }

// Put registers a PUT handler.
func (b *Builder) Put(h Handler) error { return b.Handle(http.MethodPut, h) }

// Delete registers a DELETE handler.
func (b *Builder) Delete(h Handler) error { return b.Handle(http.MethodDelete, h) }

// Patch registers a PATCH handler.
func (b *Builder) Patch(h Handler) error { return b.Handle(http.MethodPatch, h) }

// Validate installs the validation schema set for a method. Registering a
// second set for the same method returns ErrDuplicateSchema without
// touching the first. The generated validation middleware always runs
// after user middleware for the method.
func (b *Builder) Validate(method string, set schema.Set) error {
	m := strings.ToUpper(method)
	if _, exists := b.validation[m]; exists {
		return fmt.Errorf("%s: %w", m, ErrDuplicateSchema)
	}
	if set.Empty() {
		return fmt.Errorf("%s: %w", m, ErrEmptySchema)
	}
	b.validation[m] = validationMiddleware(set)
	return nil
}

// Compile produces one composed handler per registered method. A builder
// with no registered handlers compiles to an empty map.
func (b *Builder) Compile() map[string]Compiled {
	compiled := make(map[string]Compiled, len(b.handlers))
	for method, handler := range b.handlers {
		chain := make([]Middleware, 0, len(b.wildcard)+len(b.middleware[method])+1)
		chain = append(chain, b.wildcard...)
		chain = append(chain, b.middleware[method]...)
		if v, ok := b.validation[method]; ok {
			chain = append(chain, v)
		}
		compiled[method] = compose(chain, handler)
	}
	return compiled
}

func compose(chain []Middleware, handler Handler) Compiled {
	return func(c *Request) (*Response, error) {
		for _, mw := range chain {
			verdict := mw(c)
			switch verdict.kind {
			case verdictForbid:
				return finalize(c, JSON(http.StatusForbidden, map[string]string{
					"error": "Forbidden",
				})), nil
			case verdictHalt:
				return finalize(c, verdict.resp), nil
			}
		}

		result, err := handler(c)
		if err != nil {
			return finalize(c, JSON(http.StatusInternalServerError, map[string]string{
				"error": "Internal Server Error",
			})), err
		}
		return finalize(c, normalize(result)), nil
	}
}

// normalize turns a handler return value into a response: an already-formed
// response passes through verbatim, anything else becomes a 200 JSON body.
func normalize(result any) *Response {
	if resp, ok := result.(*Response); ok {
		return resp
	}
	return JSON(http.StatusOK, result)
}

// finalize merges middleware-written headers and the request id onto the
// outgoing response.
func finalize(c *Request, resp *Response) *Response {
	if resp == nil {
		resp = &Response{Status: http.StatusOK}
	}
	for key, values := range c.header {
		for _, v := range values {
			if resp.Header == nil {
				resp.Header = http.Header{}
			}
			resp.Header.Add(key, v)
		}
	}
	if c.id != "" {
		resp.Set("X-Request-ID", c.id)
	}
	return resp
}

// validationMiddleware checks each configured part in a fixed order and
// stops at the first failure. Validated values replace the corresponding
// Request fields so the handler observes only validated data.
func validationMiddleware(set schema.Set) Middleware {
	return func(c *Request) (verdict Verdict) {
		defer func() {
			if r := recover(); r != nil {
				verdict = Halt(JSON(http.StatusInternalServerError, map[string]string{
					"error": fmt.Sprintf("Validation error: %v", r),
				}))
			}
		}()

		if set.Body != nil {
			raw, err := io.ReadAll(c.HTTP.Body)
			if err != nil {
				return Halt(JSON(http.StatusBadRequest, map[string]string{
					"error": "Unable to read request body",
				}))
			}
			var data any
			if err := json.Unmarshal(raw, &data); err != nil {
				return Halt(JSON(http.StatusBadRequest, map[string]string{
					"error": "Invalid JSON in request body",
				}))
			}
			value, issues := set.Body.Validate(data)
			if issues != nil {
				return Halt(validationFailed("Body", issues))
			}
			c.Body = value
		}

		if set.Query != nil {
			value, issues := set.Query.Validate(flattenValues(c.HTTP.URL.Query()))
			if issues != nil {
				return Halt(validationFailed("Query", issues))
			}
			c.Query = value
		}

		if set.Headers != nil {
			value, issues := set.Headers.Validate(flattenValues(url.Values(c.HTTP.Header)))
			if issues != nil {
				return Halt(validationFailed("Headers", issues))
			}
			c.Headers = value
		}

		if set.Params != nil {
			data := make(map[string]any, len(c.PathParams))
			for k, v := range c.PathParams {
				data[k] = v
			}
			value, issues := set.Params.Validate(data)
			if issues != nil {
				return Halt(validationFailed("Params", issues))
			}
			c.Params = value
		}

		return Next()
	}
}

func validationFailed(part string, issues []schema.Issue) *Response {
	return JSON(http.StatusBadRequest, map[string]any{
		"error":  part + " validation failed",
		"issues": issues,
	})
}

// flattenValues keeps the first value per key, matching how handlers read
// single-valued query parameters and headers.
func flattenValues(values url.Values) map[string]any {
	data := make(map[string]any, len(values))
	for key, list := range values {
		if len(list) > 0 {
			data[key] = list[0]
		}
	}
	return data
}
