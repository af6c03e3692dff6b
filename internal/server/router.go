package server

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/echoapi/internal/metrics"
	"github.com/lambda-feedback/echoapi/internal/request"
)

type RouterParams struct {
	fx.In

	Handlers []*HttpHandler `group:"handlers"`

	Request request.Options

	Metrics *metrics.Metrics

	Logger *zap.Logger
}

// NewRouter registers all handlers on a ServeMux and wraps it in the
// middleware chain shared by every route: panic recovery, access log,
// request normalization and metrics.
func NewRouter(params RouterParams) http.Handler {
	mux := http.NewServeMux()

	for _, handler := range params.Handlers {
		params.Logger.Debug("registering handler", zap.String("pattern", handler.Pattern))
		mux.Handle(handler.Pattern, handler.Handler)
	}

	var handler http.Handler = mux
	handler = Instrument(params.Metrics)(handler)
	handler = request.Middleware(params.Request, params.Logger.Named("request"))(handler)
	handler = AccessLog(params.Logger.Named("access"))(handler)
	handler = Recovery(params.Logger)(handler)

	return handler
}
