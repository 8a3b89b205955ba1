// Package routes provides the author-facing route definition surface:
// a builder that accumulates per-method handlers, middleware, and
// validation schemas for one endpoint, and a registry that route modules
// add themselves to at init time.
package routes

import (
	"context"
	"net/http"
)

// Request carries one in-flight request through the middleware chain and
// into the business handler. The Body, Query, Headers, and Params fields
// are nil until a validation schema for the corresponding part has run;
// after validation they hold the typed, validated value, so handlers never
// re-validate what a schema already checked.
type Request struct {
	HTTP       *http.Request
	PathParams map[string]string

	Body    any
	Query   any
	Headers any
	Params  any

	id     string
	header http.Header
}

// Context returns the underlying request context.
func (c *Request) Context() context.Context {
	return c.HTTP.Context()
}

// Param returns the captured path parameter with the given name, or "".
func (c *Request) Param(name string) string {
	return c.PathParams[name]
}

// ID returns the request identifier assigned by middleware, or "".
func (c *Request) ID() string {
	return c.id
}

// SetID records a request identifier. It is echoed on the response as
// the X-Request-ID header.
func (c *Request) SetID(id string) {
	c.id = id
}

// Header returns a header set that middleware may write to. Its entries
// are merged onto whatever response ends the request.
func (c *Request) Header() http.Header {
	if c.header == nil {
		c.header = http.Header{}
	}
	return c.header
}

// Response is an already-formed handler result. A handler (or middleware)
// returning one bypasses JSON normalization: the status, headers, and body
// are used verbatim.
type Response struct {
	Status int
	Header http.Header
	Body   any
}

// JSON builds a response with the given status and a JSON-serializable body.
func JSON(status int, body any) *Response {
	return &Response{Status: status, Body: body}
}

// Set adds a response header and returns the response for chaining.
func (r *Response) Set(key, value string) *Response {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(key, value)
	return r
}

// Handler is a business handler. Returning a *Response passes it through
// verbatim; returning any other value serializes it as a 200 JSON response;
// returning an error yields a 500 response without exposing the error text.
type Handler func(c *Request) (any, error)

// Middleware runs ahead of a handler and decides whether the request
// proceeds. It must return one of Next, Forbid, or Halt; once a middleware
// forbids or halts, no later middleware and no handler runs.
type Middleware func(c *Request) Verdict

// Compiled is a fully composed method handler: middleware chain, optional
// validation, business handler, and response normalization. The returned
// response is always non-nil; a non-nil error reports a handler or
// middleware failure that was converted to a 500 response, for logging.
type Compiled func(c *Request) (*Response, error)

type verdictKind int

const (
	verdictNext verdictKind = iota
	verdictForbid
	verdictHalt
)

// Verdict is a middleware outcome: continue, reject with 403, or
// short-circuit with an explicit response.
type Verdict struct {
	kind verdictKind
	resp *Response
}

// Next lets the request continue to the next middleware or the handler.
func Next() Verdict {
	return Verdict{kind: verdictNext}
}

// Forbid rejects the request with a 403 JSON response.
func Forbid() Verdict {
	return Verdict{kind: verdictForbid}
}

// Halt ends the request with the given response. No later middleware and
// no handler runs; the response skips JSON normalization.
func Halt(resp *Response) Verdict {
	return Verdict{kind: verdictHalt, resp: resp}
}
