package app

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/lambda-feedback/echoapi/config"
	"github.com/lambda-feedback/echoapi/internal/callback"
	"github.com/lambda-feedback/echoapi/internal/contract"
	"github.com/lambda-feedback/echoapi/internal/docs"
	"github.com/lambda-feedback/echoapi/internal/metrics"
	"github.com/lambda-feedback/echoapi/internal/shell"
	"github.com/lambda-feedback/echoapi/util/conf"
	"github.com/lambda-feedback/echoapi/util/logging"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	return shell.New(log, SharedModule(config)), nil
}

// SharedModule provides the collaborators of the route handlers, shared by
// the standalone server and the lambda handler.
func SharedModule(config config.Config) fx.Option {
	options := []fx.Option{
		// provide global config
		fx.Supply(config),
		// provide section configs
		fx.Supply(config.Server),
		fx.Supply(config.Callback),
		fx.Supply(config.Responder),
		fx.Supply(config.Docs),
		// provide metrics
		fx.Provide(metrics.New),
		// provide callback dispatcher
		fx.Provide(callback.NewDispatcher),
		// provide docs store
		fx.Provide(docs.NewStore),
	}

	if config.Contract.Validate {
		// provide envelope validator
		options = append(options, fx.Provide(contract.New))
	}

	return fx.Module("shared", options...)
}
