// Package request turns an incoming *http.Request into the endpoint
// independent Request every responder works on: lower-cased header map,
// flat query map, path parameters, the undecoded request target and the
// parsed body.
package request

import "maps"

// Request is the normalized view of one incoming http request.
type Request struct {
	// Method is the exact request verb.
	Method string

	// Header maps lower-cased header names to their values. Repeated
	// headers are joined with ", ".
	Header map[string]string

	// Query maps query keys to the first supplied value.
	Query map[string]string

	// Params holds the path parameters of the matched route.
	Params map[string]string

	// RawTarget is the request target exactly as it appeared on the
	// request line, without any decoding.
	RawTarget string

	// Body is the parsed body: a JSON value for JSON requests, a flat
	// string map for form requests and an empty object otherwise.
	Body any
}

// HeaderValue returns the value of the header with the given lower-case
// name.
func (r *Request) HeaderValue(name string) (string, bool) {
	v, ok := r.Header[name]
	return v, ok
}

// Param returns the named path parameter, or "" if the route has none.
func (r *Request) Param(name string) string {
	return r.Params[name]
}

// BodyObject returns the body as a JSON object. ok is false when the body
// is an array or any other non-object value.
func (r *Request) BodyObject() (map[string]any, bool) {
	obj, ok := r.Body.(map[string]any)
	return obj, ok
}

// BodyField looks up a top-level field of an object body. ok reports
// whether the key exists, regardless of its value.
func (r *Request) BodyField(name string) (any, bool) {
	obj, ok := r.BodyObject()
	if !ok {
		return nil, false
	}

	v, ok := obj[name]
	return v, ok
}

// WithParams returns a shallow copy of r carrying the given path
// parameters.
func (r *Request) WithParams(params map[string]string) *Request {
	clone := *r
	clone.Params = maps.Clone(params)
	return &clone
}
