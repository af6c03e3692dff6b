package responder

import (
	"context"
	"net/http"

	"github.com/lambda-feedback/echoapi/internal/request"
)

const fieldAllTypesInputs = "allTypesInputs"

// typeRule decides the output for one input field.
type typeRule func(v any, kind Kind) any

func passThrough(v any, _ Kind) any {
	return v
}

func only(allowed Kind) typeRule {
	return func(v any, kind Kind) any {
		if kind != allowed {
			return nil
		}
		return v
	}
}

var allTypesRules = []struct {
	input  string
	output string
	rule   typeRule
}{
	{"textInput", "textOutput", passThrough},
	{"decimalInput", "decimalOutput", passThrough},
	// integers are echoed, not truncated
	{"integerInput", "integerOutput", passThrough},
	{"booleanInput", "booleanOutput", only(KindBoolean)},
	// datetimes are echoed without parsing
	{"datetimeInput", "datetimeOutput", passThrough},
	{"collectionInput", "collectionOutput", only(KindArray)},
}

// Inputs echoes the raw request next to computed outputs.
type Inputs struct {
	Headers map[string]string `json:"headers"`
	Body    any               `json:"body"`
}

// AllTypesEnvelope is the response of the all-types endpoint.
type AllTypesEnvelope struct {
	Inputs  Inputs         `json:"inputs"`
	Outputs map[string]any `json:"outputs"`
}

// AllTypes applies the per-field type rules to the allTypesInputs object.
// Only fields whose key is present take part; a field whose value fails its
// type check is answered with null.
func AllTypes(_ context.Context, req *request.Request) Response {
	envelope := AllTypesEnvelope{
		Inputs: Inputs{
			Headers: req.Header,
			Body:    req.Body,
		},
		Outputs: map[string]any{},
	}

	field, _ := req.BodyField(fieldAllTypesInputs)
	inputs, ok := field.(map[string]any)
	if !ok {
		return JSON(http.StatusOK, envelope)
	}

	for _, r := range allTypesRules {
		v, present := inputs[r.input]
		if !present {
			continue
		}
		envelope.Outputs[r.output] = r.rule(v, Classify(v, present))
	}

	return JSON(http.StatusOK, envelope)
}
