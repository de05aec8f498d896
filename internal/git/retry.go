package git

import (
	"context"
	"time"

	"github.com/mrz1836/gitauto/internal/constants"
)

// RetryConfig configures exponential backoff for retried operations.
type RetryConfig struct {
	// MaxAttempts counts the first attempt; 1 disables retries.
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// PushRetryConfig returns the push backoff with retries extra attempts.
func PushRetryConfig(retries int) RetryConfig {
	if retries < 0 {
		retries = 0
	}
	return RetryConfig{
		MaxAttempts:  retries + 1,
		InitialDelay: constants.PushRetryInitialDelay,
		MaxDelay:     constants.PushRetryMaxDelay,
		Multiplier:   constants.PushRetryMultiplier,
	}
}

// RetryableOperation is one unit of work that ExecuteWithRetry may repeat.
type RetryableOperation[R any] interface {
	// Attempt performs one try. success ends the loop.
	Attempt(ctx context.Context, attempt int) (result R, success bool, err error)
	// ShouldRetry decides whether a failed attempt is worth repeating.
	ShouldRetry(result R, err error) bool
	// OnRetryWait is called before sleeping for delay.
	OnRetryWait(attempt int, delay time.Duration)
}

// ExecuteWithRetry runs op until it succeeds, ShouldRetry says stop, or
// MaxAttempts is reached. It returns the last result, the number of attempts
// made and the last error. A done ctx interrupts the wait between attempts.
func ExecuteWithRetry[R any](ctx context.Context, config RetryConfig, op RetryableOperation[R]) (result R, attempts int, finalErr error) {
	maxAttempts := max(config.MaxAttempts, 1)
	delay := config.InitialDelay

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attempts = attempt

		res, ok, err := op.Attempt(ctx, attempt)
		if ok {
			return res, attempts, nil
		}
		result, finalErr = res, err

		if attempt == maxAttempts || !op.ShouldRetry(res, err) {
			break
		}

		op.OnRetryWait(attempt, delay)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, attempts, ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * config.Multiplier)
		if config.MaxDelay > 0 && delay > config.MaxDelay {
			delay = config.MaxDelay
		}
	}

	return result, attempts, finalErr
}

// SimpleRetryOperation builds a RetryableOperation from functions.
type SimpleRetryOperation[R any] struct {
	AttemptFunc     func(ctx context.Context, attempt int) (R, bool, error)
	ShouldRetryFunc func(result R, err error) bool
	OnRetryWaitFunc func(attempt int, delay time.Duration)
}

// Attempt implements RetryableOperation.
func (s *SimpleRetryOperation[R]) Attempt(ctx context.Context, attempt int) (R, bool, error) {
	return s.AttemptFunc(ctx, attempt)
}

// ShouldRetry implements RetryableOperation. A nil ShouldRetryFunc never retries.
func (s *SimpleRetryOperation[R]) ShouldRetry(result R, err error) bool {
	if s.ShouldRetryFunc == nil {
		return false
	}
	return s.ShouldRetryFunc(result, err)
}

// OnRetryWait implements RetryableOperation.
func (s *SimpleRetryOperation[R]) OnRetryWait(attempt int, delay time.Duration) {
	if s.OnRetryWaitFunc != nil {
		s.OnRetryWaitFunc(attempt, delay)
	}
}

var _ RetryableOperation[any] = (*SimpleRetryOperation[any])(nil)
