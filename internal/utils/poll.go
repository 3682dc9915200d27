package utils

import (
	"context"
	"errors"
	"time"
)

// ErrPollTimeout is returned by PollUntil when the wall-clock ceiling elapses
// before the check reports done. Caller cancellation surfaces as ctx.Err() instead.
var ErrPollTimeout = errors.New("polling ceiling exceeded")

// PollUntil runs check immediately and then once per interval until it reports
// done, returns an error, the ceiling elapses or ctx is cancelled.
func PollUntil(
	ctx context.Context, interval, ceiling time.Duration,
	check func(ctx context.Context) (bool, error),
) error {
	deadline := time.Now().Add(ceiling)
	pollCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		done, err := check(pollCtx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		select {
		case <-pollCtx.Done():
			// The parent may carry its own deadline; only ours is a poll timeout.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return ErrPollTimeout
		case <-ticker.C:
		}
	}
}

// IsTimeout reports whether err means "gave up waiting" rather than "definitely failed".
func IsTimeout(err error) bool {
	return errors.Is(err, ErrPollTimeout) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
