package responder_test

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/echoapi/internal/request"
	"github.com/lambda-feedback/echoapi/internal/responder"
)

func newRequest(method, target string, body any) *request.Request {
	return &request.Request{
		Method:    method,
		Header:    map[string]string{"host": "localhost:8080"},
		Query:     map[string]string{},
		Params:    map[string]string{},
		RawTarget: target,
		Body:      body,
	}
}

// jsonBody decodes s the way the request normalizer does.
func jsonBody(t *testing.T, s string) any {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

// wire renders a response body as it is sent.
func wire(t *testing.T, res responder.Response) map[string]any {
	data, err := json.Marshal(res.Body)
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func jsonNumber(s string) json.Number {
	return json.Number(s)
}

func jsonMarshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
