package responder

import (
	"context"
	"net/http"

	"github.com/lambda-feedback/echoapi/internal/request"
)

// Hello answers with a constant greeting.
func Hello(context.Context, *request.Request) Response {
	return JSON(http.StatusOK, map[string]string{"hello": "world"})
}

// Health reports that the process is serving.
func Health(context.Context, *request.Request) Response {
	return JSON(http.StatusOK, map[string]string{"status": "ok"})
}
