package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/echoapi/internal/httputil"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	err := httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"url": "https://x.tld/?a=1&b=<2>"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"url":"https://x.tld/?a=1&b=<2>"}`+"\n", w.Body.String())
}

func TestWriteJSON_NilBody(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, httputil.WriteJSON(w, http.StatusNotFound, nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, httputil.WriteError(w, http.StatusInternalServerError, "boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
}

func TestWriteEmpty(t *testing.T) {
	w := httptest.NewRecorder()

	httputil.WriteEmpty(w, http.StatusGatewayTimeout)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, w.Header().Get("Content-Type"))
}
