package server_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/echoapi/internal/server"
)

func TestHttpServer_ServeAndShutdown(t *testing.T) {
	srv := server.NewHttpServer(server.HttpServerParams{
		Context: context.Background(),
		Config:  server.HttpConfig{Host: "127.0.0.1", Port: 0},
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}),
		Logger: zaptest.NewLogger(t),
	})

	listener, err := srv.Listen(context.Background())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(listener)
	}()

	res, err := http.Get("http://" + listener.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-done)
}
