package classifier

import "errors"

// Sentinel errors for classification operations.
var (
	// ErrInvalidNarrative indicates caller-correctable input: empty or
	// below the minimum narrative length. Never retried.
	ErrInvalidNarrative = errors.New("invalid narrative")

	// ErrClassificationUnavailable indicates the provider produced no
	// usable response within the retry bound. No partial result exists.
	ErrClassificationUnavailable = errors.New("classification unavailable")
)
