package responder

import (
	"context"
	"net/http"
	"strings"

	"github.com/lambda-feedback/echoapi/internal/request"
)

const (
	pathEncodingMarker  = "/api/path-encoding/"
	queryEncodingMarker = "/api/query-encoding?string_query="

	// headerOriginalURL is set by serverless front-ends that rewrite the
	// request target before it reaches us.
	headerOriginalURL = "x-original-url"
)

// EncodingInputs is the raw request echoed by the encoding endpoints.
type EncodingInputs struct {
	OriginalURL string            `json:"originalUrl"`
	Headers     map[string]string `json:"headers"`
	Body        any               `json:"body"`
}

// PathEncodingEnvelope is the response of the path-encoding endpoint.
type PathEncodingEnvelope struct {
	Inputs EncodingInputs `json:"inputs"`
	Path   string         `json:"path"`
}

// QueryEncodingEnvelope is the response of the query-encoding endpoint.
type QueryEncodingEnvelope struct {
	Inputs EncodingInputs `json:"inputs"`
	Query  string         `json:"query"`
}

// PathEncoding returns the part of the raw request target following the
// path-encoding prefix, byte for byte.
func PathEncoding(_ context.Context, req *request.Request) Response {
	return JSON(http.StatusOK, PathEncodingEnvelope{
		Inputs: encodingInputs(req),
		Path:   stripThroughLast(req.RawTarget, pathEncodingMarker),
	})
}

// QueryEncoding returns the raw value of the string_query parameter as it
// appeared in the request target, byte for byte.
func QueryEncoding(_ context.Context, req *request.Request) Response {
	target := req.RawTarget
	if original, ok := req.HeaderValue(headerOriginalURL); ok {
		target = original
	}

	return JSON(http.StatusOK, QueryEncodingEnvelope{
		Inputs: encodingInputs(req),
		Query:  stripThroughLast(target, queryEncodingMarker),
	})
}

func encodingInputs(req *request.Request) EncodingInputs {
	return EncodingInputs{
		OriginalURL: req.RawTarget,
		Headers:     req.Header,
		Body:        req.Body,
	}
}

// stripThroughLast drops everything up to and including the last
// occurrence of marker. s is returned unchanged if marker does not occur.
func stripThroughLast(s, marker string) string {
	if i := strings.LastIndex(s, marker); i >= 0 {
		return s[i+len(marker):]
	}
	return s
}
