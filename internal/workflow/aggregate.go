package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/skyhook-labs/talon/internal/cases"
	"github.com/skyhook-labs/talon/internal/classifier"
)

// AggregateNode returns a state node that folds the classifier records
// into a case classification: overall confidence, per-level summaries,
// and primary and contributing factor lists.
func AggregateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		narrativeID, err := extractNarrativeID(s)
		if err != nil {
			return s, fmt.Errorf("aggregate: %w", err)
		}

		records, err := extractRecords(s)
		if err != nil {
			return s, fmt.Errorf("aggregate: %w", err)
		}

		cc, err := cases.Aggregate(rt.Registry, narrativeID, records)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrAggregateFailed, err)
		}

		cc.ModelName = rt.Provider.Model()
		cc.ProviderName = rt.Provider.Name()

		rt.Logger.InfoContext(
			ctx, "aggregate node complete",
			"narrative_id", narrativeID,
			"overall_confidence", cc.OverallConfidence,
		)

		s = s.Set(KeyCase, cc)
		return s, nil
	})
}

func extractNarrativeID(s state.State) (uuid.UUID, error) {
	val, ok := s.Get(KeyNarrativeID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing %s in state", ErrAggregateFailed, KeyNarrativeID)
	}

	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s is not uuid.UUID", ErrAggregateFailed, KeyNarrativeID)
	}

	return id, nil
}

func extractRecords(s state.State) ([]classifier.Record, error) {
	val, ok := s.Get(KeyRecords)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrAggregateFailed, KeyRecords)
	}

	records, ok := val.([]classifier.Record)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a record slice", ErrAggregateFailed, KeyRecords)
	}

	return records, nil
}
