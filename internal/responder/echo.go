package responder

import (
	"context"
	"net/http"

	"github.com/lambda-feedback/echoapi/internal/request"
)

// ParamStatus is the path parameter carrying a requested status code.
const ParamStatus = "status"

// EchoEnvelope mirrors a request back to the caller.
type EchoEnvelope struct {
	Method          string            `json:"echo-method"`
	Headers         map[string]string `json:"echo-headers"`
	Query           map[string]string `json:"echo-qs"`
	BodyContentType *string           `json:"echo-body-content-type,omitempty"`
	Body            any               `json:"echo-body,omitempty"`
}

// Echo returns the method, headers, query and body of the request. The
// response status is taken from the status path parameter when the route
// has one, 200 otherwise.
func Echo(_ context.Context, req *request.Request) Response {
	envelope := EchoEnvelope{
		Method:  req.Method,
		Headers: req.Header,
		Query:   req.Query,
		Body:    req.Body,
	}

	if contentType, ok := req.HeaderValue("content-type"); ok {
		envelope.BodyContentType = &contentType
	}

	status := http.StatusOK
	if raw, ok := req.Params[ParamStatus]; ok {
		code, err := ParseStatus(raw)
		if err != nil {
			return invalidStatus(err)
		}
		status = code
	}

	return JSON(status, envelope)
}

// Status answers with the status code from the path and an empty body.
func Status(_ context.Context, req *request.Request) Response {
	code, err := ParseStatus(req.Param(ParamStatus))
	if err != nil {
		return invalidStatus(err)
	}

	return Empty(code)
}
