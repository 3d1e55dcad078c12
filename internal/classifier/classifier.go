// Package classifier implements the narrative classifier: it validates
// input, gates concurrent provider calls, applies the per-failure retry
// policy, and turns raw provider judgments into validated records.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/skyhook-labs/talon/internal/reasoning"
	"github.com/skyhook-labs/talon/internal/taxonomy"
)

// Record is the validated per-category judgment for one narrative,
// produced by the classifier and immutable afterwards.
type Record struct {
	Code       string  `json:"code"`
	Present    bool    `json:"present"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Warning is an advisory note about a boundary repair applied while
// validating the provider response (clamped confidence, defaulted
// rationale). Warnings never fail a classification.
type Warning struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// Settings are the classifier's tunables, finalized by internal/config.
type Settings struct {
	MinNarrativeLength int
	MaxRetries         int
	RequestTimeout     time.Duration
	RetryBackoff       time.Duration
	MaxConcurrent      int64
}

// Classifier transforms narrative text into a complete, validated record
// set covering every registered category. Classifier is safe for
// concurrent use; the semaphore is its only mutable state.
type Classifier struct {
	registry *taxonomy.Registry
	provider reasoning.Provider
	settings Settings
	sem      *semaphore.Weighted
	logger   *slog.Logger
}

// New creates a Classifier with the given registry, provider, and settings.
func New(
	registry *taxonomy.Registry,
	provider reasoning.Provider,
	settings Settings,
	logger *slog.Logger,
) *Classifier {
	if settings.MaxConcurrent < 1 {
		settings.MaxConcurrent = 1
	}

	return &Classifier{
		registry: registry,
		provider: provider,
		settings: settings,
		sem:      semaphore.NewWeighted(settings.MaxConcurrent),
		logger:   logger.With("system", "classifier"),
	}
}

// Classify judges the narrative against every registered category and
// returns one validated record per category, in registry order.
//
// Requests beyond the concurrency limit queue until a slot frees up or
// the context is cancelled. Provider failures are retried per failure
// kind up to the configured bound; after exhausting retries the call
// fails with ErrClassificationUnavailable and no partial record set.
func (c *Classifier) Classify(ctx context.Context, narrative string) ([]Record, []Warning, error) {
	if len(strings.TrimSpace(narrative)) < c.settings.MinNarrativeLength {
		return nil, nil, fmt.Errorf(
			"%w: narrative shorter than %d characters",
			ErrInvalidNarrative, c.settings.MinNarrativeLength,
		)
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, nil, fmt.Errorf("acquire classification slot: %w", err)
	}
	defer c.sem.Release(1)

	req := c.buildRequest(narrative)

	var lastErr error
	for attempt := 0; attempt <= c.settings.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := c.waitBackoff(ctx, lastErr, attempt); err != nil {
				return nil, nil, err
			}

			c.logger.Warn(
				"retrying classification",
				"attempt", attempt+1,
				"error", lastErr,
			)
		}

		resp, err := c.judge(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				// caller cancelled; discard, don't retry
				return nil, nil, fmt.Errorf("classification cancelled: %w", ctx.Err())
			}
			lastErr = err
			continue
		}

		records, warnings, err := c.validate(resp)
		if err != nil {
			lastErr = err
			continue
		}

		return records, warnings, nil
	}

	return nil, nil, fmt.Errorf("%w: %w", ErrClassificationUnavailable, lastErr)
}

func (c *Classifier) judge(ctx context.Context, req *reasoning.Request) (*reasoning.Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.settings.RequestTimeout)
	defer cancel()

	return c.provider.Judge(callCtx, req)
}

func (c *Classifier) buildRequest(narrative string) *reasoning.Request {
	categories := make([]reasoning.CategoryRef, 0, c.registry.Len())
	for _, cat := range c.registry.All() {
		categories = append(categories, reasoning.CategoryRef{
			Code:  cat.Code,
			Name:  cat.Name,
			Level: int(cat.Level),
		})
	}

	return &reasoning.Request{
		Narrative:  narrative,
		Categories: categories,
	}
}
