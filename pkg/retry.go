package pkg

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultMaxRetries = 3

// RetryTransient runs op, retrying with exponential backoff as long as the
// returned error is classified transient by IsTransientError. Terminal
// errors abort immediately. Only use for idempotent operations.
func RetryTransient(ctx context.Context, op func() error) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 100 * time.Millisecond
	expBackoff.MaxInterval = 2 * time.Second

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if IsTransientError(err) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(
		backoff.WithMaxRetries(expBackoff, defaultMaxRetries),
		ctx,
	))
}
