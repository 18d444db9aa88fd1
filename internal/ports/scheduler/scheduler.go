package scheduler

import (
	"context"
	"time"

	"socialite/internal/core/scheduledpost"
)

// PostScheduler is the one seam between post creation and the deferred
// execution machinery; components depend on it, never on Redis directly.
type PostScheduler interface {
	Schedule(ctx context.Context, runAt time.Time, payload *scheduledpost.Payload) error
}

// DelayedQueue is the worker-side view of the queue. ClaimDue hands out
// only payloads the caller now exclusively owns; a payload that fails a
// retryable step is put back via Schedule.
type DelayedQueue interface {
	PostScheduler
	ClaimDue(ctx context.Context, now time.Time, limit int64) ([]*scheduledpost.Payload, error)
}
