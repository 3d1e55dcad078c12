package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skyhook-labs/talon/internal/reasoning"
)

// rateLimitMultiplier stretches the backoff for rate-limited failures:
// retrying quickly against a throttling provider only digs the hole deeper.
const rateLimitMultiplier = 4

// waitBackoff sleeps before retry attempt n (1-based) according to the
// failure kind of the previous attempt. Malformed responses retry
// immediately since they are not load-related; transport failures back
// off exponentially; rate limiting backs off on a stretched schedule.
func (c *Classifier) waitBackoff(ctx context.Context, cause error, attempt int) error {
	delay := c.backoffFor(cause, attempt)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("classification cancelled during backoff: %w", ctx.Err())
	}
}

func (c *Classifier) backoffFor(cause error, attempt int) time.Duration {
	if errors.Is(cause, reasoning.ErrMalformedResponse) {
		return 0
	}

	base := c.settings.RetryBackoff
	if errors.Is(cause, reasoning.ErrRateLimited) {
		base *= rateLimitMultiplier
	}

	return base << (attempt - 1)
}
