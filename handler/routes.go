package handler

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/echoapi/internal/callback"
	"github.com/lambda-feedback/echoapi/internal/contract"
	"github.com/lambda-feedback/echoapi/internal/docs"
	"github.com/lambda-feedback/echoapi/internal/metrics"
	"github.com/lambda-feedback/echoapi/internal/responder"
	"github.com/lambda-feedback/echoapi/internal/server"
)

// Route binds a responder to a ServeMux pattern.
type Route struct {
	// Pattern is the ServeMux pattern of the route.
	Pattern string

	// Params names the path wildcards passed on to the responder.
	Params []string

	// Respond answers the request.
	Respond responder.Func

	// Contract names the schema of successful responses, if any.
	Contract contract.Name
}

type RoutesParams struct {
	fx.In

	Responder responder.Config

	Dispatcher callback.Dispatcher
	Docs       *docs.Store
	Metrics    *metrics.Metrics

	// Validator checks outgoing envelopes when contract validation is on.
	Validator *contract.Validator `optional:"true"`

	Log *zap.Logger
}

type RoutesResult struct {
	fx.Out

	Handlers []*server.HttpHandler `group:"handlers,flatten"`
}

// Routes returns the route table of the API.
func Routes(
	cfg responder.Config,
	dispatcher callback.Dispatcher,
	store responder.FixtureStore,
) []Route {
	return []Route{
		{
			Pattern:  "GET /api/hello",
			Respond:  responder.Hello,
			Contract: contract.Hello,
		},
		{
			Pattern: "GET /api/docs/{name}",
			Params:  []string{responder.ParamDocName},
			Respond: responder.Docs(store),
		},
		{
			Pattern:  "/api/echo",
			Respond:  responder.Echo,
			Contract: contract.Echo,
		},
		{
			Pattern:  "/api/echo/{$}",
			Respond:  responder.Echo,
			Contract: contract.Echo,
		},
		{
			Pattern:  "/api/echo/{status}",
			Params:   []string{responder.ParamStatus},
			Respond:  responder.Echo,
			Contract: contract.Echo,
		},
		{
			Pattern: "GET /api/files/errors/{status}",
			Params:  []string{responder.ParamStatus},
			Respond: responder.Status,
		},
		{
			Pattern:  "POST /api/all-types",
			Respond:  responder.AllTypes,
			Contract: contract.AllTypes,
		},
		{
			Pattern: "POST /api/all-parameter-types/{string_path}/{integer_path}/{boolean_path}",
			Params: []string{
				responder.ParamStringPath,
				responder.ParamIntegerPath,
				responder.ParamBooleanPath,
			},
			Respond:  responder.AllParameterTypes,
			Contract: contract.AllParameterTypes,
		},
		{
			Pattern:  "POST /api/path-encoding/{text}",
			Respond:  responder.PathEncoding,
			Contract: contract.PathEncoding,
		},
		{
			Pattern:  "POST /api/query-encoding",
			Respond:  responder.QueryEncoding,
			Contract: contract.QueryEncoding,
		},
		{
			Pattern:  "POST /api/form-urlencoded/{string_path}/parsed",
			Params:   []string{responder.ParamStringPath},
			Respond:  responder.Form,
			Contract: contract.FormURLEncoded,
		},
		{
			Pattern:  "POST /api/async-callback",
			Respond:  responder.NewAsyncCallback(dispatcher).Respond,
			Contract: contract.AsyncCallback,
		},
		{
			Pattern: "GET /api/sleep",
			Respond: responder.Sleep(cfg.SleepDelay),
		},
		{
			Pattern: "GET /health",
			Respond: responder.Health,
		},
	}
}

// NewRoutes provides a handler for every route plus the metrics endpoint.
func NewRoutes(params RoutesParams) RoutesResult {
	routes := Routes(params.Responder, params.Dispatcher, params.Docs)

	handlers := make([]*server.HttpHandler, 0, len(routes)+1)

	for _, route := range routes {
		handlers = append(handlers, server.AsHttpHandler(
			route.Pattern,
			NewRouteHandler(route, params.Validator, params.Log),
		).Handler)
	}

	handlers = append(handlers, server.AsHttpHandler(
		"GET /metrics",
		params.Metrics.Handler(),
	).Handler)

	return RoutesResult{Handlers: handlers}
}
