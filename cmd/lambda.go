package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/echoapi/app"
	"github.com/lambda-feedback/echoapi/app/lambda"
	"github.com/lambda-feedback/echoapi/util/conf"
	"github.com/lambda-feedback/echoapi/util/logging"
)

var (
	lambdaCmdDescription = `The lambda command serves the mock API as an AWS Lambda
runtime interface client. Events from API Gateway (v1, v2)
or an Application Load Balancer are translated into http
requests and answered by the same routes as the serve
command.

The command will start the AWS runtime interface client and
blocks indefinitely, processing incoming AWS Lambda events.`
	lambdaCmd = &cli.Command{
		Name:        "lambda",
		Usage:       "Run the AWS Lambda handler",
		Description: lambdaCmdDescription,
		Action:      lambdaAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "lambda-proxy-source",
				Usage:    "the source of the AWS Lambda event. Options: API_GW_V1, API_GW_V2, ALB.",
				Value:    lambda.ProxySourceApiGatewayV2.String(),
				EnvVars:  []string{"LAMBDA_PROXY_SOURCE"},
				Category: "lambda",
			},
		},
	}
)

func lambdaAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := conf.Parse[lambda.Config](conf.ParseOptions{
		Defaults: lambda.DefaultConfig,
		Log:      log,
		Cli:      ctx,
	})
	if err != nil {
		return err
	}

	log.Info("starting AWS Lambda handler")

	return app.Run(ctx.Context, lambda.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, lambdaCmd)
}
