package responder

import (
	"context"
	"net/http"

	"github.com/lambda-feedback/echoapi/internal/request"
)

// Path parameters of the all-parameter-types route. The integer and boolean
// segments are positional names only; their values stay strings.
const (
	ParamStringPath  = "string_path"
	ParamIntegerPath = "integer_path"
	ParamBooleanPath = "boolean_path"
)

var parameterHeaders = []string{"string_header", "integer_header", "boolean_header"}

var parameterPaths = []struct {
	param string
	key   string
}{
	{ParamStringPath, "string-path"},
	{ParamIntegerPath, "integer-path"},
	{ParamBooleanPath, "boolean-path"},
}

// ParameterInputs is the raw request echoed by the all-parameter-types
// endpoint.
type ParameterInputs struct {
	Headers     map[string]string `json:"headers"`
	Querystring map[string]string `json:"querystring"`
	Body        any               `json:"body"`
}

// ParameterOutput groups the supplied values by location.
type ParameterOutput struct {
	Headers     map[string]string `json:"headers"`
	Path        map[string]string `json:"path"`
	Querystring map[string]string `json:"querystring"`
	Body        any               `json:"body"`
}

// ParameterEnvelope is the response of the all-parameter-types endpoint.
type ParameterEnvelope struct {
	Inputs ParameterInputs `json:"inputs"`
	Output ParameterOutput `json:"allParameterTypesOutput"`
}

// AllParameterTypes echoes values supplied at once through headers, path
// segments, query string and body, grouped by where they came from.
func AllParameterTypes(_ context.Context, req *request.Request) Response {
	headers := make(map[string]string, len(parameterHeaders))
	for _, name := range parameterHeaders {
		if v, ok := req.HeaderValue(name); ok {
			headers[name] = v
		}
	}

	path := make(map[string]string, len(parameterPaths))
	for _, p := range parameterPaths {
		path[p.key] = req.Param(p.param)
	}

	return JSON(http.StatusOK, ParameterEnvelope{
		Inputs: ParameterInputs{
			Headers:     req.Header,
			Querystring: req.Query,
			Body:        req.Body,
		},
		Output: ParameterOutput{
			Headers:     headers,
			Path:        path,
			Querystring: req.Query,
			Body:        req.Body,
		},
	})
}
