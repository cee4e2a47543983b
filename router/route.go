package router

import (
	"net/http"
)

// Route pairs an endpoint with its handler and middleware chain.
type Route struct {
	endpoint    string
	handler     http.Handler
	middlewares []func(http.Handler) http.Handler
}

// NewRoute creates a Route for an endpoint of the form "METHOD /path".
func NewRoute(endpoint string) *Route {
	return &Route{
		endpoint:    endpoint,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (r *Route) Endpoint() string {
	return r.endpoint
}

func (r *Route) WithHandler(h http.Handler) *Route {
	r.handler = h
	return r
}

func (r *Route) WithHandlerFunc(h func(http.ResponseWriter, *http.Request)) *Route {
	r.handler = http.HandlerFunc(h)
	return r
}

// WithMiddleware adds one or more middlewares to the route. Middlewares
// execute in the order they are given, from left to right:
//
//	.WithMiddleware(mw1, mw2)
//
// runs mw1 first, then mw2, then the handler. This matches the natural
// reading order of the code, the same semantics as chaining packages
// like Alice (github.com/justinas/alice).
func (r *Route) WithMiddleware(middlewares ...func(http.Handler) http.Handler) *Route {
	for _, mw := range middlewares {
		r.middlewares = append([]func(http.Handler) http.Handler{mw}, r.middlewares...)
	}
	return r
}

// WithMiddlewareChain prepends a chain of middlewares (added in given order)
func (r *Route) WithMiddlewareChain(middlewares []func(http.Handler) http.Handler) *Route {
	return r.WithMiddleware(middlewares...)
}

// Handler returns the final handler with all middlewares applied.
func (r *Route) Handler() http.Handler {
	if r.handler == nil {
		panic("route handler cannot be nil")
	}
	handler := r.handler
	for _, mw := range r.middlewares {
		handler = mw(handler)
	}
	return handler
}
