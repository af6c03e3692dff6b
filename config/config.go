package config

import (
	"github.com/lambda-feedback/echoapi/internal/callback"
	"github.com/lambda-feedback/echoapi/internal/contract"
	"github.com/lambda-feedback/echoapi/internal/docs"
	"github.com/lambda-feedback/echoapi/internal/request"
	"github.com/lambda-feedback/echoapi/internal/responder"
	"github.com/lambda-feedback/echoapi/util/conf"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Server configures request handling shared by all routes
	Server request.Options `conf:"server"`

	// Callback configures deferred callback delivery
	Callback callback.Config `conf:"callback"`

	// Responder configures endpoint behavior
	Responder responder.Config `conf:"responder"`

	// Docs configures the documents served under /api/docs
	Docs docs.Config `conf:"docs"`

	// Contract configures response envelope validation
	Contract contract.Config `conf:"contract"`
}

var DefaultConfig = conf.DefaultConfig{
	"log_level":             "info",
	"log_format":            "production",
	"server.body_limit":     request.DefaultBodyLimit,
	"callback.delay":        callback.DefaultDelay,
	"callback.user_agent":   "echoapi",
	"responder.sleep_delay": responder.DefaultSleepDelay,
	"docs.dir":              "",
	"contract.validate":     false,
}
