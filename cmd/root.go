package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lambda-feedback/echoapi/config"
	"github.com/lambda-feedback/echoapi/internal/shell"
	"github.com/lambda-feedback/echoapi/util/conf"
	"github.com/lambda-feedback/echoapi/util/logging"
)

const envPrefix = "ECHOAPI_"

var (
	appName  = "echoapi"
	appUsage = `A mock HTTP API for exercising clients and integration
connectors: echo, type fidelity, raw encodings, status
injection and deferred webhook callbacks.`
	// cliMap maps flags to nested config keys
	cliMap = map[string]string{
		"body-limit":          "server.body_limit",
		"callback-delay":      "callback.delay",
		"callback-user-agent": "callback.user_agent",
		"sleep-delay":         "responder.sleep_delay",
		"docs-dir":            "docs.dir",
		"validate-contract":   "contract.validate",
	}
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.PathFlag{
				Name:    "config",
				Usage:   "load configuration from a .json or .env file.",
				EnvVars: []string{"ECHOAPI_CONFIG"},
			},
			// api flags
			&cli.Int64Flag{
				Name:     "body-limit",
				Usage:    "the maximum accepted request body size in bytes.",
				Category: "api",
			},
			&cli.DurationFlag{
				Name:     "callback-delay",
				Usage:    "the delay before a deferred callback is delivered.",
				Category: "api",
			},
			&cli.StringFlag{
				Name:     "callback-user-agent",
				Usage:    "the user agent sent with deferred callbacks.",
				Category: "api",
			},
			&cli.DurationFlag{
				Name:     "sleep-delay",
				Usage:    "how long the sleep endpoint waits before answering.",
				Category: "api",
			},
			&cli.PathFlag{
				Name:     "docs-dir",
				Usage:    "a directory of JSON documents served in addition to the built-in ones.",
				Category: "api",
			},
			&cli.BoolFlag{
				Name:     "validate-contract",
				Usage:    "validate every response envelope against its schema and log violations.",
				Category: "api",
			},
		},
		Before: func(ctx *cli.Context) error {
			// bootstrap logger for config parsing, from flags only
			bootLog, err := createLogger(ctx.String("log-level"), ctx.String("log-format"))
			if err != nil {
				return err
			}

			// parse config using defaults, file, env and flags
			cfg, err := conf.Parse[config.Config](conf.ParseOptions{
				Cli:       ctx,
				CliMap:    cliMap,
				Defaults:  config.DefaultConfig,
				EnvPrefix: envPrefix,
				FileName:  ctx.Path("config"),
				Log:       bootLog,
			})
			if err != nil {
				return err
			}

			// create the logger from the resolved config
			log, err := createLogger(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			// inject logger and config into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			// Before did not run, e.g. for --help
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return nil
			}

			_ = log.Sync()

			return nil
		},
	}
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

// Execute runs the cli and returns the process exit code.
func Execute(params ExecuteParams) int {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	return run(context.Background(), os.Args)
}

func run(ctx context.Context, args []string) int {
	err := rootApp.RunContext(ctx, args)

	code := shell.ExitCode(err)

	// shell exit errors were logged by the shell already
	if err != nil && !shell.IsExitError(err) {
		fmt.Fprintf(os.Stderr, "exit error: %s\n", err.Error())
	}

	return code
}

// createLogger builds a logger. An empty or "production" format selects
// the JSON encoder; an unknown level falls back to info.
func createLogger(level, format string) (*zap.Logger, error) {
	var config zap.Config
	if format == "" || format == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.InitialFields = map[string]any{
		"app": appName,
	}

	config.Level = parseLogLevel(level)

	return config.Build()
}

func parseLogLevel(level string) zap.AtomicLevel {
	if atom, err := zap.ParseAtomicLevel(level); err == nil && level != "" {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
