package probe

import (
	"context"
	"fmt"
	"time"

	"statuswatch/internal/domain"
)

// RetryChecker wraps another Checker and re-runs failed checks with a
// fixed backoff. The last result wins; its message is annotated with the
// attempt count so a retried series is visible in the history.
type RetryChecker struct {
	Inner    Checker
	Attempts int
	Backoff  time.Duration
}

func (r *RetryChecker) Check(ctx context.Context, url string) domain.CheckResult {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var last domain.CheckResult
	for i := 0; i < attempts; i++ {
		last = r.Inner.Check(ctx, url)
		if last.OK() {
			return last
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return last
			case <-time.After(r.Backoff):
			}
		}
	}

	if attempts > 1 {
		last.ErrorMessage = fmt.Sprintf("%s (after %d attempts)", last.ErrorMessage, attempts)
	}
	return last
}
