package server

import (
	"net/http"

	"go.uber.org/fx"
)

// HttpHandler binds a handler to a ServeMux pattern, e.g. "GET /api/hello".
type HttpHandler struct {
	Pattern string
	Handler http.Handler
}

// HttpHandlerResult contributes a handler to the router.
type HttpHandlerResult struct {
	fx.Out

	Handler *HttpHandler `group:"handlers"`
}

func AsHttpHandler(
	pattern string,
	handler http.Handler,
) HttpHandlerResult {
	return HttpHandlerResult{
		Handler: &HttpHandler{
			Pattern: pattern,
			Handler: handler,
		},
	}
}
