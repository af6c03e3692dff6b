package responder_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/echoapi/internal/responder"
)

func TestEcho_MirrorsRequest(t *testing.T) {
	req := newRequest(http.MethodPut, "/api/echo?a=1", map[string]any{"k": "v"})
	req.Header["content-type"] = "application/json"
	req.Header["x-custom"] = "Value"
	req.Query["a"] = "1"

	res := responder.Echo(context.Background(), req)

	assert.Equal(t, http.StatusOK, res.StatusCode)

	body := wire(t, res)
	assert.Equal(t, "PUT", body["echo-method"])
	assert.Equal(t, map[string]any{
		"host":         "localhost:8080",
		"content-type": "application/json",
		"x-custom":     "Value",
	}, body["echo-headers"])
	assert.Equal(t, map[string]any{"a": "1"}, body["echo-qs"])
	assert.Equal(t, "application/json", body["echo-body-content-type"])
	assert.Equal(t, map[string]any{"k": "v"}, body["echo-body"])
}

func TestEcho_EmptyBodyIsEchoed(t *testing.T) {
	res := responder.Echo(context.Background(), newRequest(http.MethodGet, "/api/echo", map[string]any{}))

	body := wire(t, res)
	assert.Equal(t, map[string]any{}, body["echo-body"])
	assert.NotContains(t, body, "echo-body-content-type")
}

func TestEcho_Status(t *testing.T) {
	for _, code := range []int{200, 400, 401, 403, 404, 405, 410, 500, 502, 503, 504, 299, 999} {
		req := newRequest(http.MethodPost, "/api/echo", map[string]any{})
		req.Params[responder.ParamStatus] = itoa(code)

		res := responder.Echo(context.Background(), req)
		assert.Equal(t, code, res.StatusCode)
		assert.False(t, res.Empty)
	}
}

func TestEcho_InvalidStatus(t *testing.T) {
	req := newRequest(http.MethodPost, "/api/echo/abc", map[string]any{})
	req.Params[responder.ParamStatus] = "abc"

	res := responder.Echo(context.Background(), req)

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, map[string]any{"error": "invalid status code: abc"}, wire(t, res))
}

func TestStatus(t *testing.T) {
	for _, code := range []int{200, 400, 401, 403, 404, 405, 410, 500, 502, 503, 504} {
		req := newRequest(http.MethodGet, "/api/files/errors", map[string]any{})
		req.Params[responder.ParamStatus] = itoa(code)

		res := responder.Status(context.Background(), req)
		assert.Equal(t, code, res.StatusCode)
		assert.True(t, res.Empty)
	}
}

func TestStatus_Invalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "99", "1000", "200.5"} {
		req := newRequest(http.MethodGet, "/api/files/errors", map[string]any{})
		req.Params[responder.ParamStatus] = raw

		res := responder.Status(context.Background(), req)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode, raw)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{"404", 404, true},
		{" 201 ", 201, true},
		{"200.0", 200, true},
		{jsonNumber("418"), 418, true},
		{float64(302), 302, true},
		{503, 503, true},
		{"abc", 0, false},
		{"99", 0, false},
		{"1000", 0, false},
		{float64(200.5), 0, false},
		{true, 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		code, err := responder.ParseStatus(tt.in)
		if !tt.ok {
			require.Error(t, err, tt.in)
			assert.ErrorIs(t, err, responder.ErrInvalidStatus)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, code)
	}
}

func TestHello(t *testing.T) {
	res := responder.Hello(context.Background(), newRequest(http.MethodGet, "/api/hello", map[string]any{}))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, map[string]any{"hello": "world"}, wire(t, res))
}

func TestHealth(t *testing.T) {
	res := responder.Health(context.Background(), newRequest(http.MethodGet, "/health", map[string]any{}))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, map[string]any{"status": "ok"}, wire(t, res))
}
