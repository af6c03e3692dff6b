// Package callback implements deferred webhook delivery: a job is
// scheduled when a request is acknowledged and, after a fixed delay, its
// payload is POSTed to the caller supplied URL. Delivery is at most once.
// Nothing is persisted, retried or cancelled, and a job still pending
// when the process exits is lost.
package callback

import "time"

// DefaultDelay is the time between acknowledging a request and firing its
// callback.
const DefaultDelay = 15 * time.Second

// Config holds the dispatcher settings.
type Config struct {
	// Delay is the time a job waits before it fires.
	Delay time.Duration `conf:"delay"`

	// UserAgent is sent with every callback request.
	UserAgent string `conf:"user_agent"`
}

// Job is one scheduled callback.
type Job struct {
	// ReceiptID correlates the callback with the acknowledged request.
	ReceiptID string

	// TargetURL receives the callback.
	TargetURL string

	// Payload is sent as the JSON body of the callback.
	Payload any

	// FireAt is set by the dispatcher when the job is scheduled.
	FireAt time.Time
}
