package httprouter

import (
	"net/http"

	"github.com/bhamail/bhamail/router"
	jshttprouter "github.com/julienschmidt/httprouter"
)

// Router implements router.Router on top of julienschmidt/httprouter.
type Router struct {
	rt *jshttprouter.Router
}

func New() router.Router {
	return &Router{rt: jshttprouter.New()}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

// Handle registers a handler for a "METHOD /path" endpoint. A malformed
// endpoint is a programming or config error, surfaced as a panic at
// registration time rather than a dead route at request time.
func (r *Router) Handle(endpoint string, handler http.Handler) {
	method, path, err := router.SplitEndpoint(endpoint)
	if err != nil {
		panic(err)
	}
	r.rt.Handler(method, path, handler)
}

func (r *Router) Register(routes ...*router.Route) {
	for _, route := range routes {
		r.Handle(route.Endpoint(), route.Handler())
	}
}
