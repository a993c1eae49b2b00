package sheets

import (
	"context"
	"fmt"
	"time"

	"film_stats/internal/config"

	"github.com/rs/zerolog/log"
)

// withRetry runs fn until it succeeds or cfg.MaxAttempts is exhausted.
// Each attempt gets its own timeout when cfg.Timeout is set.
func withRetry(ctx context.Context, cfg config.RetryConfig, operation string, fn func(ctx context.Context) error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			wait := cfg.Backoff(attempt - 1)
			log.Warn().
				Err(lastErr).
				Str("operation", operation).
				Int("attempt", attempt).
				Dur("wait", wait).
				Msg("Retrying sheet operation")

			select {
			case <-ctx.Done():
				return fmt.Errorf("%s cancelled: %w", operation, ctx.Err())
			case <-time.After(wait):
			}
		}

		lastErr = runAttempt(ctx, cfg.Timeout, fn)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			break
		}
	}

	return fmt.Errorf("%s failed after %d attempt(s): %w", operation, attempts, lastErr)
}

func runAttempt(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(attemptCtx)
}
