package responder

import (
	"context"
	"net/http"
	"time"

	"github.com/lambda-feedback/echoapi/internal/request"
)

// DefaultSleepDelay is used when no sleep delay is configured.
const DefaultSleepDelay = 120 * time.Second

// Sleep answers after delay, for exercising client timeouts. The wait is
// abandoned when the client goes away.
func Sleep(delay time.Duration) Func {
	if delay <= 0 {
		delay = DefaultSleepDelay
	}

	return func(ctx context.Context, _ *request.Request) Response {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			return JSON(http.StatusOK, map[string]string{"message": "OK"})
		case <-ctx.Done():
			return Error(http.StatusServiceUnavailable, ctx.Err().Error())
		}
	}
}
