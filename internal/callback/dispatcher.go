package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/echoapi/internal/metrics"
)

// ErrUnexpectedStatus is returned when the callback target answers with a
// non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected callback response status")

// Dispatcher schedules callback jobs.
type Dispatcher interface {
	// Schedule arranges for job to be delivered after the configured delay
	// and returns immediately. The returned job carries its fire time.
	Schedule(job Job) Job
}

// Params defines the dependencies of the dispatcher.
type Params struct {
	fx.In

	Config Config

	// Client performs the callback requests. http.DefaultClient if nil.
	Client *http.Client `optional:"true"`

	Metrics *metrics.Metrics

	Log *zap.Logger
}

// TimerDispatcher fires every job on its own timer. No handle to a
// scheduled job is kept.
type TimerDispatcher struct {
	delay     time.Duration
	userAgent string
	client    *http.Client
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

var _ Dispatcher = (*TimerDispatcher)(nil)

// NewDispatcher creates a timer based dispatcher.
func NewDispatcher(params Params) Dispatcher {
	return NewTimerDispatcher(params)
}

// NewTimerDispatcher creates a TimerDispatcher.
func NewTimerDispatcher(params Params) *TimerDispatcher {
	delay := params.Config.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	client := params.Client
	if client == nil {
		client = http.DefaultClient
	}

	return &TimerDispatcher{
		delay:     delay,
		userAgent: params.Config.UserAgent,
		client:    client,
		metrics:   params.Metrics,
		log:       params.Log.Named("callback"),
		now:       time.Now,
	}
}

// Schedule snapshots the payload and starts the job's timer.
func (d *TimerDispatcher) Schedule(job Job) Job {
	job.FireAt = d.now().Add(d.delay)

	log := d.log.With(
		zap.String("receipt_id", job.ReceiptID),
		zap.String("target", job.TargetURL),
	)

	body, err := json.Marshal(job.Payload)
	if err != nil {
		log.Error("failed to encode callback payload", zap.Error(err))
		return job
	}

	d.metrics.CallbacksScheduled.Inc()
	d.metrics.CallbacksPending.Inc()

	time.AfterFunc(d.delay, func() {
		d.fire(job, body, log)
	})

	log.Info("callback scheduled", zap.Time("fire_at", job.FireAt))

	return job
}

// fire delivers a job. It runs detached from any request; failures are
// logged and reported, never returned.
func (d *TimerDispatcher) fire(job Job, body []byte, log *zap.Logger) {
	defer d.metrics.CallbacksPending.Dec()

	defer func() {
		if r := recover(); r != nil {
			d.metrics.CallbacksDelivered.WithLabelValues(metrics.OutcomeFailure).Inc()
			log.Error("callback panicked", zap.Any("panic", r))
			sentry.CurrentHub().Recover(r)
		}
	}()

	status, err := d.deliver(context.Background(), job.TargetURL, body)
	if err != nil {
		d.metrics.CallbacksDelivered.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Error("callback delivery failed", zap.Int("status", status), zap.Error(err))

		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("receipt_id", job.ReceiptID)
			scope.SetExtra("target", job.TargetURL)
			sentry.CaptureException(err)
		})
		return
	}

	d.metrics.CallbacksDelivered.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info("callback delivered", zap.Int("status", status))
}

func (d *TimerDispatcher) deliver(ctx context.Context, target string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create callback request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	res, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send callback: %w", err)
	}
	defer res.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return res.StatusCode, fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	return res.StatusCode, nil
}
