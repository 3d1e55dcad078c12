package reasoning

import (
	"context"
	"errors"
	"strings"
)

// Failure kinds for provider calls. The classifier keys its retry and
// backoff policy off these: unreachable and rate-limited failures back
// off, malformed responses retry immediately.
var (
	ErrProviderUnreachable = errors.New("reasoning provider unreachable")
	ErrMalformedResponse   = errors.New("malformed provider response")
	ErrRateLimited         = errors.New("reasoning provider rate limited")
)

// classifyTransportError buckets a raw agent error into a failure kind.
// go-agents surfaces provider HTTP failures as opaque errors, so rate
// limiting is detected from the status text.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrProviderUnreachable
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return ErrRateLimited
	}

	return ErrProviderUnreachable
}
