package standalone

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/echoapi/handler"
	"github.com/lambda-feedback/echoapi/internal/server"
	"github.com/lambda-feedback/echoapi/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		// rename logger for module
		logging.DecorateLogger("serve"),
		// provide handlers
		handler.Module(),
		// provide router
		server.RouterModule(),
		// provide server
		server.Module(config.HttpConfig),
	)
}
