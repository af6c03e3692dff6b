package responder

import (
	"context"
	"net/http"

	"github.com/lambda-feedback/echoapi/internal/request"
)

const booleanError = "error"

// FormInputs is the raw request echoed by the form endpoint.
type FormInputs struct {
	OriginalURL string            `json:"originalUrl"`
	Headers     map[string]string `json:"headers"`
	Body        any               `json:"body"`
	URLEncoded  bool              `json:"x-www-form-urlencoded"`
}

// FormEnvelope is the response of the form endpoint.
type FormEnvelope struct {
	Inputs  FormInputs     `json:"inputs"`
	Outputs map[string]any `json:"outputs"`
}

// Form converts the string fields of a form body into typed outputs.
// Unparseable numbers become null; a boolean other than "true" or "false"
// becomes the string "error".
func Form(_ context.Context, req *request.Request) Response {
	contentType, _ := req.HeaderValue("content-type")

	outputs := map[string]any{
		"textPathOutput": req.Param(ParamStringPath),
	}

	if v, ok := req.BodyField("string"); ok {
		outputs["textOutput"] = v
	}

	outputs["decimalOutput"] = nil
	if f, ok := parseLeadingFloat(stringValue(req.BodyField("decimal"))); ok {
		outputs["decimalOutput"] = f
	}

	outputs["integerOutput"] = nil
	if n, ok := parseLeadingInt(stringValue(req.BodyField("integer"))); ok {
		outputs["integerOutput"] = n
	}

	outputs["booleanOutput"] = parseFormBoolean(req.BodyField("boolean"))

	if v, ok := req.BodyField("datetime"); ok {
		outputs["datetimeOutput"] = v
	}

	return JSON(http.StatusOK, FormEnvelope{
		Inputs: FormInputs{
			OriginalURL: req.RawTarget,
			Headers:     req.Header,
			Body:        req.Body,
			URLEncoded:  contentType == request.MediaTypeForm,
		},
		Outputs: outputs,
	})
}

func parseFormBoolean(v any, _ bool) any {
	switch v {
	case "true":
		return true
	case "false":
		return false
	default:
		return booleanError
	}
}
