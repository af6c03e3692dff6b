// Package responder implements the endpoint behaviors of the API. Every
// responder maps a normalized request to a Response; none of them keeps
// state between requests.
package responder

import (
	"context"
	"time"

	"github.com/lambda-feedback/echoapi/internal/httputil"
	"github.com/lambda-feedback/echoapi/internal/request"
)

// Config holds responder settings.
type Config struct {
	// SleepDelay is how long the sleep endpoint waits before answering.
	SleepDelay time.Duration `conf:"sleep_delay"`
}

// Response is the outcome of a responder.
type Response struct {
	// StatusCode is the http status to send.
	StatusCode int

	// Body is marshalled as JSON unless Empty is set.
	Body any

	// Empty marks a response without a body.
	Empty bool

	// Then, if set, runs once the response has been written.
	Then func()
}

// Func is a responder.
type Func func(ctx context.Context, req *request.Request) Response

// JSON returns a response with a JSON body.
func JSON(status int, body any) Response {
	return Response{StatusCode: status, Body: body}
}

// Empty returns a response without a body.
func Empty(status int) Response {
	return Response{StatusCode: status, Empty: true}
}

// Error returns a response carrying message in an error envelope.
func Error(status int, message string) Response {
	return JSON(status, httputil.ErrorEnvelope{Error: message})
}
