package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/lambda-feedback/echoapi/internal/contract"
	"github.com/lambda-feedback/echoapi/internal/httputil"
	"github.com/lambda-feedback/echoapi/internal/request"
	"github.com/lambda-feedback/echoapi/internal/responder"
)

// RouteHandler adapts a responder to http. It collects the route's path
// parameters, runs the responder and writes its result. Deferred work
// attached to the result runs only once the response is written.
type RouteHandler struct {
	route     Route
	validator *contract.Validator
	log       *zap.Logger
}

// NewRouteHandler creates the handler for route. validator may be nil.
func NewRouteHandler(
	route Route,
	validator *contract.Validator,
	log *zap.Logger,
) *RouteHandler {
	return &RouteHandler{
		route:     route,
		validator: validator,
		log:       log,
	}
}

func (h *RouteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		zap.String("route", h.route.Pattern),
		zap.String("method", r.Method),
	)

	// normalized by request.Middleware, installed by the router
	req, ok := request.FromContext(r.Context())
	if !ok {
		log.Error("request was not normalized")
		_ = httputil.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	params := make(map[string]string, len(h.route.Params))
	for _, name := range h.route.Params {
		params[name] = r.PathValue(name)
	}

	res := h.route.Respond(r.Context(), req.WithParams(params))

	if res.Empty {
		httputil.WriteEmpty(w, res.StatusCode)
	} else {
		h.validate(res, log)

		if err := httputil.WriteJSON(w, res.StatusCode, res.Body); err != nil {
			log.Debug("failed to write response", zap.Error(err))
		}
	}

	if res.Then != nil {
		res.Then()
	}
}

// validate logs envelopes that do not match the route's contract.
func (h *RouteHandler) validate(res responder.Response, log *zap.Logger) {
	if h.validator == nil {
		return
	}

	name := h.route.Contract
	if _, ok := res.Body.(httputil.ErrorEnvelope); ok {
		name = contract.Error
	}

	if name == "" {
		return
	}

	if err := h.validator.Validate(name, res.Body); err != nil {
		log.Warn("response violates contract", zap.Int("status", res.StatusCode), zap.Error(err))
	}
}
