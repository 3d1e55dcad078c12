package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/skyhook-labs/talon/internal/cases"
	"github.com/skyhook-labs/talon/internal/classifier"
)

// ReviewNode returns a state node that attaches advisory findings to the
// case: consistency checks against the registry plus any repair warnings
// carried forward from the classifier. Findings never fail the node.
func ReviewNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		cc, err := extractCase(s)
		if err != nil {
			return s, fmt.Errorf("review: %w", err)
		}

		findings := cases.Review(rt.Registry, cc, rt.Threshold)

		if warnings, ok := extractWarnings(s); ok {
			for _, w := range warnings {
				findings = append(findings, cases.Inconsistency{
					Kind:   cases.KindResponseRepair,
					Codes:  []string{w.Code},
					Detail: w.Detail,
				})
			}
		}

		cc.Inconsistencies = findings

		rt.Logger.InfoContext(
			ctx, "review node complete",
			"narrative_id", cc.NarrativeID,
			"finding_count", len(findings),
		)

		s = s.Set(KeyCase, cc)
		return s, nil
	})
}

func extractCase(s state.State) (*cases.CaseClassification, error) {
	val, ok := s.Get(KeyCase)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrReviewFailed, KeyCase)
	}

	cc, ok := val.(*cases.CaseClassification)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a case classification", ErrReviewFailed, KeyCase)
	}

	return cc, nil
}

func extractWarnings(s state.State) ([]classifier.Warning, bool) {
	val, ok := s.Get(KeyWarnings)
	if !ok {
		return nil, false
	}

	warnings, ok := val.([]classifier.Warning)
	return warnings, ok
}
