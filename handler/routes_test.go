package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lambda-feedback/echoapi/handler"
	"github.com/lambda-feedback/echoapi/internal/callback"
	"github.com/lambda-feedback/echoapi/internal/contract"
	"github.com/lambda-feedback/echoapi/internal/docs"
	"github.com/lambda-feedback/echoapi/internal/metrics"
	"github.com/lambda-feedback/echoapi/internal/request"
	"github.com/lambda-feedback/echoapi/internal/responder"
	"github.com/lambda-feedback/echoapi/internal/server"
)

const callbackDelay = 100 * time.Millisecond

// newAPI wires the full route table behind the router. Every envelope is
// checked against its contract; violations fail the test.
func newAPI(t *testing.T) http.Handler {
	m := metrics.New()

	store, err := docs.NewStore(docs.Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	validator, err := contract.New()
	require.NoError(t, err)

	core, logs := observer.New(zap.WarnLevel)
	t.Cleanup(func() {
		for _, entry := range logs.FilterMessage("response violates contract").All() {
			t.Errorf("contract violation: %v", entry.ContextMap())
		}
	})

	routes := handler.NewRoutes(handler.RoutesParams{
		Responder: responder.Config{SleepDelay: 10 * time.Millisecond},
		Dispatcher: callback.NewTimerDispatcher(callback.Params{
			Config:  callback.Config{Delay: callbackDelay, UserAgent: "echoapi-test"},
			Metrics: m,
			Log:     zap.NewNop(),
		}),
		Docs:      store,
		Metrics:   m,
		Validator: validator,
		Log:       zap.New(core),
	})

	return server.NewRouter(server.RouterParams{
		Handlers: routes.Handlers,
		Metrics:  m,
		Logger:   zaptest.NewLogger(t),
	})
}

func do(t *testing.T, api http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var v map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var statusCodes = []int{200, 400, 401, 403, 404, 405, 410, 500, 502, 503, 504}

func TestStatusInjection(t *testing.T) {
	api := newAPI(t)

	for _, code := range statusCodes {
		rec := do(t, api, http.MethodGet, "/api/files/errors/"+strconv.Itoa(code), "", "")
		assert.Equal(t, code, rec.Code)
		assert.Empty(t, rec.Body.String())

		rec = do(t, api, http.MethodPost, "/api/echo/"+strconv.Itoa(code), "application/json", `{"a":1}`)
		assert.Equal(t, code, rec.Code)
		assert.Equal(t, "POST", decode(t, rec)["echo-method"])
	}
}

func TestEcho(t *testing.T) {
	api := newAPI(t)

	for _, target := range []string{"/api/echo", "/api/echo/"} {
		req := httptest.NewRequest(http.MethodPatch, target+"?q=1&q=2&x=y", strings.NewReader(`{"k":[1,2]}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Custom-Header", "Some Value")
		req.Header.Set("Authorization", "Bearer abc")

		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, target)

		body := decode(t, rec)
		headers := body["echo-headers"].(map[string]any)

		assert.Equal(t, "PATCH", body["echo-method"])
		assert.Equal(t, "Some Value", headers["x-custom-header"])
		assert.Equal(t, "Bearer abc", headers["authorization"])
		assert.Equal(t, "example.com", headers["host"])
		assert.Equal(t, map[string]any{"q": "1", "x": "y"}, body["echo-qs"])
		assert.Equal(t, "application/json", body["echo-body-content-type"])
		assert.Equal(t, map[string]any{"k": []any{float64(1), float64(2)}}, body["echo-body"])
	}
}

func TestAllTypes(t *testing.T) {
	api := newAPI(t)

	tests := []struct {
		body string
		key  string
		want any
	}{
		{`{"allTypesInputs":{"booleanInput":true}}`, "booleanOutput", true},
		{`{"allTypesInputs":{"booleanInput":"true"}}`, "booleanOutput", nil},
		{`{"allTypesInputs":{"collectionInput":[]}}`, "collectionOutput", []any{}},
		{`{"allTypesInputs":{"collectionInput":"abc"}}`, "collectionOutput", nil},
	}

	for _, tt := range tests {
		rec := do(t, api, http.MethodPost, "/api/all-types", "application/json", tt.body)
		require.Equal(t, http.StatusOK, rec.Code)

		outputs := decode(t, rec)["outputs"].(map[string]any)
		assert.Contains(t, outputs, tt.key)
		assert.Equal(t, tt.want, outputs[tt.key], tt.body)
	}
}

func TestAllParameterTypes(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodPost,
		"/api/all-parameter-types/hello%20world/12/notabool?string_query=q&integer_query=3",
		strings.NewReader(`{"string_body":"b"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("string_header", "h")

	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	output := decode(t, rec)["allParameterTypesOutput"].(map[string]any)
	assert.Equal(t, map[string]any{
		"string-path":  "hello world",
		"integer-path": "12",
		"boolean-path": "notabool",
	}, output["path"])
	assert.Equal(t, map[string]any{"string_header": "h"}, output["headers"])
	assert.Equal(t, map[string]any{"string_query": "q", "integer_query": "3"}, output["querystring"])
	assert.Equal(t, map[string]any{"string_body": "b"}, output["body"])
}

func TestPathEncoding(t *testing.T) {
	api := newAPI(t)

	rec := do(t, api, http.MethodPost, "/api/path-encoding/text%20with%20spaces", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "text%20with%20spaces", body["path"])
	assert.Equal(t, "/api/path-encoding/text%20with%20spaces", body["inputs"].(map[string]any)["originalUrl"])
}

func TestQueryEncoding(t *testing.T) {
	api := newAPI(t)

	rec := do(t, api, http.MethodPost, "/api/query-encoding?string_query=a%20b+c%2Bd", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a%20b+c%2Bd", decode(t, rec)["query"])
}

func TestFormURLEncoded(t *testing.T) {
	api := newAPI(t)

	tests := []struct {
		body string
		want any
	}{
		{"boolean=true", true},
		{"boolean=false", false},
		{"boolean=maybe", "error"},
	}

	for _, tt := range tests {
		rec := do(t, api, http.MethodPost, "/api/form-urlencoded/mytext/parsed", request.MediaTypeForm, tt.body)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		outputs := body["outputs"].(map[string]any)
		assert.Equal(t, tt.want, outputs["booleanOutput"], tt.body)
		assert.Equal(t, "mytext", outputs["textPathOutput"])
		assert.Equal(t, true, body["inputs"].(map[string]any)["x-www-form-urlencoded"])
	}

	rec := do(t, api, http.MethodPost, "/api/form-urlencoded/mytext/parsed", request.MediaTypeForm,
		"string=some+text&decimal=3.5kg&integer=42.9&datetime=2024-01-01T00%3A00%3A00Z")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, map[string]any{
		"textPathOutput": "mytext",
		"textOutput":     "some text",
		"decimalOutput":  3.5,
		"integerOutput":  float64(42),
		"booleanOutput":  "error",
		"datetimeOutput": "2024-01-01T00:00:00Z",
	}, decode(t, rec)["outputs"])
}

type receiver struct {
	mu       sync.Mutex
	requests []received
	server   *httptest.Server
}

type received struct {
	at     time.Time
	target string
	body   map[string]any
}

func newReceiver(t *testing.T) *receiver {
	rcv := &receiver{}
	rcv.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		rcv.mu.Lock()
		rcv.requests = append(rcv.requests, received{time.Now(), r.URL.RequestURI(), body})
		rcv.mu.Unlock()
	}))
	t.Cleanup(rcv.server.Close)
	return rcv
}

func (r *receiver) received() []received {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]received(nil), r.requests...)
}

func TestAsyncCallback_Delivers(t *testing.T) {
	api := newAPI(t)
	rcv := newReceiver(t)

	callbackURL := rcv.server.URL + "/hook?qs=abc"

	sent := time.Now()
	rec := do(t, api, http.MethodPost, "/api/async-callback?callbackUrl="+url.QueryEscape(callbackURL),
		"application/json", `{"textInput":"hi","resultStatus":"done"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)

	ack := decode(t, rec)
	assert.Equal(t, callbackURL+"&status=done", ack["outputs"].(map[string]any)["callbackUrl"])
	assert.Empty(t, rcv.received())

	require.Eventually(t, func() bool {
		return len(rcv.received()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	got := rcv.received()[0]
	assert.Equal(t, "/hook?qs=abc&status=done", got.target)
	assert.GreaterOrEqual(t, got.at.Sub(sent), callbackDelay)
	assert.Equal(t, ack["receiptId"], got.body["receiptId"])
	assert.Equal(t, ack["outputs"], got.body["outputs"])
}

func TestAsyncCallback_WithoutURLNeverCalls(t *testing.T) {
	api := newAPI(t)
	rcv := newReceiver(t)

	rec := do(t, api, http.MethodPost, "/api/async-callback", "application/json", `{"resultStatus":"done"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	time.Sleep(3 * callbackDelay)
	assert.Empty(t, rcv.received())
}

func TestMalformedBody(t *testing.T) {
	api := newAPI(t)

	targets := []string{
		"/api/echo",
		"/api/echo/201",
		"/api/all-types",
		"/api/all-parameter-types/a/1/true",
		"/api/path-encoding/x",
		"/api/query-encoding",
		"/api/form-urlencoded/x/parsed",
		"/api/async-callback",
	}

	for _, target := range targets {
		rec := do(t, api, http.MethodPost, target, "application/json", `{"key1":}`)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)

		envelope := decode(t, rec)["error"].(map[string]any)
		assert.Equal(t, `{"key1":}`, envelope["body"], target)
		assert.Equal(t, "entity.parse.failed", envelope["type"], target)
	}
}

func TestDocs(t *testing.T) {
	api := newAPI(t)

	rec := do(t, api, http.MethodGet, "/api/docs/swagger.json", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.0", decode(t, rec)["swagger"])

	rec = do(t, api, http.MethodGet, "/api/docs/doesnexist.json", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHelloSleepHealth(t *testing.T) {
	api := newAPI(t)

	rec := do(t, api, http.MethodGet, "/api/hello", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())

	rec = do(t, api, http.MethodGet, "/api/sleep", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"OK"}`, rec.Body.String())

	rec = do(t, api, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetrics(t *testing.T) {
	api := newAPI(t)

	do(t, api, http.MethodGet, "/api/hello", "", "")

	rec := do(t, api, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `echoapi_requests_total{method="GET",route="GET /api/hello",status="200"} 1`)
}

func TestUnknownRoutes(t *testing.T) {
	api := newAPI(t)

	assert.Equal(t, http.StatusNotFound, do(t, api, http.MethodGet, "/api/nope", "", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, api, http.MethodGet, "/api/all-types", "", "").Code)
}
