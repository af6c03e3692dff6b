package request

import "context"

type contextKey int

var requestKey = contextKey(0)

// ContextWithRequest stores the normalized request in ctx.
func ContextWithRequest(ctx context.Context, req *Request) context.Context {
	return context.WithValue(ctx, requestKey, req)
}

// FromContext returns the normalized request stored by the middleware.
func FromContext(ctx context.Context) (*Request, bool) {
	req, ok := ctx.Value(requestKey).(*Request)
	return req, ok
}
