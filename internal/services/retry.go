package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/logger"
	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

// upstreamAttempts is the first call plus one retry.
const upstreamAttempts = 2

var retryDelay atomic.Int64

func init() {
	retryDelay.Store(int64(500 * time.Millisecond))
}

// SetRetryDelay sets the base backoff between upstream attempts.
func SetRetryDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	retryDelay.Store(int64(d))
}

// withRetry runs fn under timeout, retrying once with backoff. Errors wrapped
// with retry.Unrecoverable fail immediately.
func withRetry(ctx context.Context, operation string, timeout time.Duration, fn func(ctx context.Context) error) error {
	return retry.Do(
		func() error {
			attemptCtx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return fn(attemptCtx)
		},
		retry.Context(ctx),
		retry.Attempts(upstreamAttempts),
		retry.Delay(time.Duration(retryDelay.Load())),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Log.Warn("retrying upstream call",
				zap.String("operation", operation),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
}
