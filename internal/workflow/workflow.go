// Package workflow orchestrates the classification pipeline for a single
// narrative as a three-node state graph: classify → aggregate → review.
// Any node failure aborts the execution with no partial case.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/skyhook-labs/talon/internal/cases"
)

// State keys shared across workflow nodes.
const (
	KeyNarrativeID = "narrative_id"
	KeyNarrative   = "narrative_text"
	KeyRecords     = "records"
	KeyWarnings    = "warnings"
	KeyCase        = "case"
)

// Result is the final output of a classification workflow execution.
type Result struct {
	NarrativeID uuid.UUID                 `json:"narrative_id"`
	Case        *cases.CaseClassification `json:"case"`
	CompletedAt time.Time                 `json:"completed_at"`
}

// Execute runs the classification workflow for one narrative and returns
// the aggregated, reviewed case.
func Execute(ctx context.Context, rt *Runtime, narrativeID uuid.UUID, narrative string) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil)
	initial = initial.Set(KeyNarrativeID, narrativeID)
	initial = initial.Set(KeyNarrative, narrative)

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(final)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("talon-classify")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("classify", ClassifyNode(rt)); err != nil {
		return nil, err
	}
	if err := graph.AddNode("aggregate", AggregateNode(rt)); err != nil {
		return nil, err
	}
	if err := graph.AddNode("review", ReviewNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("classify", "aggregate", nil); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("aggregate", "review", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("classify"); err != nil {
		return nil, err
	}
	if err := graph.SetExitPoint("review"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	caseVal, ok := s.Get(KeyCase)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyCase)
	}

	cc, ok := caseVal.(*cases.CaseClassification)
	if !ok {
		return nil, fmt.Errorf("%s is not a case classification", KeyCase)
	}

	idVal, ok := s.Get(KeyNarrativeID)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyNarrativeID)
	}

	narrativeID, ok := idVal.(uuid.UUID)
	if !ok {
		return nil, fmt.Errorf("%s is not uuid.UUID", KeyNarrativeID)
	}

	return &Result{
		NarrativeID: narrativeID,
		Case:        cc,
		CompletedAt: time.Now().UTC(),
	}, nil
}
