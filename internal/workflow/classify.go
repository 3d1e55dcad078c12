package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// ClassifyNode returns a state node that runs the narrative through the
// classifier and stores the validated per-category records and any repair
// warnings. The classifier handles retries and concurrency internally.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		narrative, err := extractNarrative(s)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		records, warnings, err := rt.Classifier.Classify(ctx, narrative)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrClassifyFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "classify node complete",
			"record_count", len(records),
			"warning_count", len(warnings),
		)

		s = s.Set(KeyRecords, records)
		s = s.Set(KeyWarnings, warnings)
		return s, nil
	})
}

func extractNarrative(s state.State) (string, error) {
	val, ok := s.Get(KeyNarrative)
	if !ok {
		return "", fmt.Errorf("%w: missing %s in state", ErrClassifyFailed, KeyNarrative)
	}

	narrative, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrClassifyFailed, KeyNarrative)
	}

	return narrative, nil
}
