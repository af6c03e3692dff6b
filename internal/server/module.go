package server

import (
	"go.uber.org/fx"
)

// RouterModule provides the http.Handler serving all registered routes.
func RouterModule() fx.Option {
	return fx.Module("router",
		fx.Provide(NewRouter),
	)
}

// Module serves the router on a standalone http listener.
func Module(config HttpConfig) fx.Option {
	return fx.Module("server",
		// provide config
		fx.Supply(config),
		// provide server
		fx.Provide(NewLifecycleServer),
		// invoke server
		fx.Invoke(func(*HttpServer) {}),
	)
}
