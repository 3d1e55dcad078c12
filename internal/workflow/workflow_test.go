package workflow_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skyhook-labs/talon/internal/cases"
	"github.com/skyhook-labs/talon/internal/classifier"
	"github.com/skyhook-labs/talon/internal/reasoning"
	"github.com/skyhook-labs/talon/internal/taxonomy"
	"github.com/skyhook-labs/talon/internal/workflow"
)

const narrative = "The unmanned aircraft lost command link shortly after takeoff and impacted a tree line beyond the field boundary."

type stubProvider struct {
	judge func(*reasoning.Request) (*reasoning.Response, error)
}

func (p *stubProvider) Judge(ctx context.Context, req *reasoning.Request) (*reasoning.Response, error) {
	return p.judge(req)
}

func (p *stubProvider) Model() string { return "stub-model" }
func (p *stubProvider) Name() string  { return "stub" }

func goodJudge(req *reasoning.Request) (*reasoning.Response, error) {
	results := make([]reasoning.Judgment, 0, len(req.Categories))
	for _, c := range req.Categories {
		results = append(results, reasoning.Judgment{
			Code:       c.Code,
			Present:    c.Code == "AE100",
			Confidence: 0.9,
			Rationale:  "stated in narrative",
		})
	}
	return &reasoning.Response{Results: results}, nil
}

func testRuntime(t *testing.T, judge func(*reasoning.Request) (*reasoning.Response, error)) *workflow.Runtime {
	t.Helper()

	reg, err := taxonomy.New(
		[]taxonomy.Category{
			{Code: "AE100", Name: "Skill-Based Errors", Level: taxonomy.LevelUnsafeActs},
			{Code: "PE100", Name: "Physical Environment", Level: taxonomy.LevelPreconditions},
			{Code: "OR100", Name: "Resource Support", Level: taxonomy.LevelOrganizational},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := &stubProvider{judge: judge}

	settings := classifier.Settings{
		MinNarrativeLength: 20,
		MaxRetries:         1,
		RequestTimeout:     time.Second,
		RetryBackoff:       time.Millisecond,
		MaxConcurrent:      2,
	}

	return &workflow.Runtime{
		Classifier: classifier.New(reg, provider, settings, logger),
		Provider:   provider,
		Registry:   reg,
		Threshold:  0.5,
		Logger:     logger,
	}
}

func TestExecute(t *testing.T) {
	rt := testRuntime(t, goodJudge)
	narrativeID := uuid.New()

	result, err := workflow.Execute(context.Background(), rt, narrativeID, narrative)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.NarrativeID != narrativeID {
		t.Errorf("NarrativeID = %s, want %s", result.NarrativeID, narrativeID)
	}
	if result.Case == nil {
		t.Fatal("result carries no case")
	}
	if result.CompletedAt.IsZero() {
		t.Error("CompletedAt not set")
	}

	cc := result.Case
	if cc.NarrativeID != narrativeID {
		t.Errorf("case NarrativeID = %s, want %s", cc.NarrativeID, narrativeID)
	}
	if len(cc.Records) != 3 {
		t.Errorf("records = %d, want 3", len(cc.Records))
	}
	if cc.ModelName != "stub-model" || cc.ProviderName != "stub" {
		t.Errorf("provenance = %s/%s, want stub-model/stub", cc.ModelName, cc.ProviderName)
	}
	if len(cc.PrimaryFactors) != 1 || cc.PrimaryFactors[0] != "AE100" {
		t.Errorf("PrimaryFactors = %v, want [AE100]", cc.PrimaryFactors)
	}
}

func TestExecuteClassifyFailureAborts(t *testing.T) {
	rt := testRuntime(t, func(*reasoning.Request) (*reasoning.Response, error) {
		return nil, reasoning.ErrProviderUnreachable
	})

	_, err := workflow.Execute(context.Background(), rt, uuid.New(), narrative)
	if err == nil {
		t.Fatal("Execute should fail when classification fails")
	}
	if !strings.Contains(err.Error(), workflow.ErrClassifyFailed.Error()) {
		t.Errorf("error = %v, want classify node failure", err)
	}
}

func TestExecuteInvalidNarrative(t *testing.T) {
	rt := testRuntime(t, goodJudge)

	_, err := workflow.Execute(context.Background(), rt, uuid.New(), "too short")
	if err == nil {
		t.Fatal("Execute should reject an invalid narrative")
	}
	if !strings.Contains(err.Error(), classifier.ErrInvalidNarrative.Error()) {
		t.Errorf("error = %v, want invalid narrative failure", err)
	}
}

func TestExecuteCarriesRepairWarnings(t *testing.T) {
	rt := testRuntime(t, func(req *reasoning.Request) (*reasoning.Response, error) {
		resp, _ := goodJudge(req)
		resp.Results[0].Confidence = 1.6
		return resp, nil
	})

	result, err := workflow.Execute(context.Background(), rt, uuid.New(), narrative)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var repairs int
	for _, f := range result.Case.Inconsistencies {
		if f.Kind == cases.KindResponseRepair {
			repairs++
		}
	}
	if repairs != 1 {
		t.Errorf("repair findings = %d, want 1", repairs)
	}
}
