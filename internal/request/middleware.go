package request

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/lambda-feedback/echoapi/internal/httputil"
)

// Middleware normalizes every request before it reaches the router and
// stores the result in the request context. Bodies that fail to parse are
// answered here, uniformly for all routes, with a 400 (or 413) error
// envelope carrying the failure details.
func Middleware(opts Options, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req, err := Normalize(r, opts)
			if err != nil {
				status := StatusCode(err)

				log.Debug("rejecting request body",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Error(err),
				)

				if err := httputil.WriteError(w, status, err); err != nil {
					log.Debug("failed to write error response", zap.Error(err))
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithRequest(r.Context(), req)))
		})
	}
}
