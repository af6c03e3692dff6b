package handler

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("handler",
		// provide route handlers
		fx.Provide(NewRoutes),
	)
}
