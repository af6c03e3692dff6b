package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/echoapi/app"
	"github.com/lambda-feedback/echoapi/app/standalone"
	"github.com/lambda-feedback/echoapi/internal/server"
)

var (
	serveCmdDescription = `The serve command starts a http server serving the mock API.

The command will launch the http server and blocks until
it receives SIGINT or SIGTERM, processing incoming http
requests. Pending deferred callbacks are dropped on exit.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server serving the mock API.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "localhost",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    8080,
				Category: "http",
				EnvVars:  []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg := standalone.Config{
		HttpConfig: server.HttpConfig{
			Host: ctx.String("host"),
			Port: ctx.Int("port"),
			H2c:  ctx.Bool("h2c"),
		},
	}

	return app.Run(ctx.Context, standalone.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
