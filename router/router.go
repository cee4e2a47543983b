package router

import (
	"fmt"
	"net/http"
	"strings"
)

// Router is the minimal routing surface the application needs. Endpoints
// are "METHOD /path" strings as found in config.Endpoints.
type Router interface {
	http.Handler
	Handle(endpoint string, handler http.Handler)
	Register(routes ...*Route)
}

// SplitEndpoint separates a "METHOD /path" endpoint string into its parts.
func SplitEndpoint(endpoint string) (method, path string, err error) {
	method, path, found := strings.Cut(endpoint, " ")
	if !found || method == "" || !strings.HasPrefix(path, "/") {
		return "", "", fmt.Errorf("invalid endpoint %q, want \"METHOD /path\"", endpoint)
	}
	return method, path, nil
}
