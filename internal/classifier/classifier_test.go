package classifier_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/skyhook-labs/talon/internal/classifier"
	"github.com/skyhook-labs/talon/internal/reasoning"
	"github.com/skyhook-labs/talon/internal/taxonomy"
)

const validNarrative = "The unmanned aircraft departed controlled flight during a gusting crosswind landing and impacted terrain short of the runway."

func testRegistry(t *testing.T) *taxonomy.Registry {
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
	return reg
}

// stubProvider returns scripted responses in sequence, repeating the last
// entry once the script is exhausted.
type stubProvider struct {
	script []func(*reasoning.Request) (*reasoning.Response, error)
	calls  int
}

func (p *stubProvider) Judge(ctx context.Context, req *reasoning.Request) (*reasoning.Response, error) {
	i := p.calls
	if i >= len(p.script) {
		i = len(p.script) - 1
	}
	p.calls++
	return p.script[i](req)
}

func (p *stubProvider) Model() string { return "stub-model" }
func (p *stubProvider) Name() string  { return "stub" }

func goodResponse(req *reasoning.Request) (*reasoning.Response, error) {
	results := make([]reasoning.Judgment, 0, len(req.Categories))
	for _, c := range req.Categories {
		results = append(results, reasoning.Judgment{
			Code:       c.Code,
			Present:    c.Code == "AE100",
			Confidence: 0.8,
			Rationale:  "observed in narrative",
		})
	}
	return &reasoning.Response{Results: results}, nil
}

func testSettings() classifier.Settings {
	return classifier.Settings{
		MinNarrativeLength: 20,
		MaxRetries:         2,
		RequestTimeout:     time.Second,
		RetryBackoff:       time.Millisecond,
		MaxConcurrent:      4,
	}
}

func newClassifier(t *testing.T, p reasoning.Provider, settings classifier.Settings) *classifier.Classifier {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return classifier.New(testRegistry(t), p, settings, logger)
}

func TestClassify(t *testing.T) {
	p := &stubProvider{script: []func(*reasoning.Request) (*reasoning.Response, error){goodResponse}}
	c := newClassifier(t, p, testSettings())

	records, warnings, err := c.Classify(context.Background(), validNarrative)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	// records come back in registry order
	wantOrder := []string{"AE100", "PE100", "OR100"}
	for i, code := range wantOrder {
		if records[i].Code != code {
			t.Errorf("records[%d].Code = %s, want %s", i, records[i].Code, code)
		}
	}

	if !records[0].Present || records[0].Confidence != 0.8 {
		t.Errorf("AE100 = %+v, want present with confidence 0.8", records[0])
	}
	if p.calls != 1 {
		t.Errorf("provider calls = %d, want 1", p.calls)
	}
}

func TestClassifyInvalidNarrative(t *testing.T) {
	p := &stubProvider{script: []func(*reasoning.Request) (*reasoning.Response, error){goodResponse}}
	c := newClassifier(t, p, testSettings())

	tests := []struct {
		name      string
		narrative string
	}{
		{"empty", ""},
		{"whitespace only", "    \n\t  "},
		{"below minimum length", "too short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.Classify(context.Background(), tt.narrative)
			if !errors.Is(err, classifier.ErrInvalidNarrative) {
				t.Errorf("error = %v, want ErrInvalidNarrative", err)
			}
		})
	}

	if p.calls != 0 {
		t.Errorf("provider calls = %d, want 0 for invalid input", p.calls)
	}
}

func TestClassifyRetryBound(t *testing.T) {
	fail := func(*reasoning.Request) (*reasoning.Response, error) {
		return nil, reasoning.ErrProviderUnreachable
	}

	p := &stubProvider{script: []func(*reasoning.Request) (*reasoning.Response, error){fail}}
	c := newClassifier(t, p, testSettings())

	_, _, err := c.Classify(context.Background(), validNarrative)
	if !errors.Is(err, classifier.ErrClassificationUnavailable) {
		t.Fatalf("error = %v, want ErrClassificationUnavailable", err)
	}
	if !errors.Is(err, reasoning.ErrProviderUnreachable) {
		t.Errorf("error should wrap the final cause, got %v", err)
	}

	// retries=2 means exactly 3 attempts
	if p.calls != 3 {
		t.Errorf("provider calls = %d, want 3", p.calls)
	}
}

func TestClassifyRecoversAfterFailure(t *testing.T) {
	fail := func(*reasoning.Request) (*reasoning.Response, error) {
		return nil, reasoning.ErrRateLimited
	}

	p := &stubProvider{script: []func(*reasoning.Request) (*reasoning.Response, error){fail, goodResponse}}
	c := newClassifier(t, p, testSettings())

	records, _, err := c.Classify(context.Background(), validNarrative)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("records = %d, want 3", len(records))
	}
	if p.calls != 2 {
		t.Errorf("provider calls = %d, want 2", p.calls)
	}
}

func TestClassifyMalformedResponseRetried(t *testing.T) {
	wrongSet := func(req *reasoning.Request) (*reasoning.Response, error) {
		return &reasoning.Response{Results: []reasoning.Judgment{
			{Code: "AE100", Present: true, Confidence: 0.9, Rationale: "x"},
		}}, nil
	}

	p := &stubProvider{script: []func(*reasoning.Request) (*reasoning.Response, error){wrongSet, goodResponse}}
	c := newClassifier(t, p, testSettings())

	records, _, err := c.Classify(context.Background(), validNarrative)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("records = %d, want 3", len(records))
	}
	if p.calls != 2 {
		t.Errorf("provider calls = %d, want 2", p.calls)
	}
}

func TestClassifyUnknownCategoryExhaustsRetries(t *testing.T) {
	unknown := func(req *reasoning.Request) (*reasoning.Response, error) {
		resp, _ := goodResponse(req)
		resp.Results[0].Code = "ZZ999"
		return resp, nil
	}

	p := &stubProvider{script: []func(*reasoning.Request) (*reasoning.Response, error){unknown}}
	c := newClassifier(t, p, testSettings())

	_, _, err := c.Classify(context.Background(), validNarrative)
	if !errors.Is(err, classifier.ErrClassificationUnavailable) {
		t.Fatalf("error = %v, want ErrClassificationUnavailable", err)
	}
	if !errors.Is(err, reasoning.ErrMalformedResponse) {
		t.Errorf("error should wrap ErrMalformedResponse, got %v", err)
	}
}

func TestClassifyClampsConfidence(t *testing.T) {
	overflow := func(req *reasoning.Request) (*reasoning.Response, error) {
		resp, _ := goodResponse(req)
		resp.Results[0].Confidence = 1.4
		return resp, nil
	}

	p := &stubProvider{script: []func(*reasoning.Request) (*reasoning.Response, error){overflow}}
	c := newClassifier(t, p, testSettings())

	records, warnings, err := c.Classify(context.Background(), validNarrative)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if records[0].Confidence != 1.0 {
		t.Errorf("confidence = %.2f, want clamped 1.0", records[0].Confidence)
	}
	if len(warnings) != 1 || warnings[0].Code != "AE100" {
		t.Errorf("warnings = %v, want one for AE100", warnings)
	}
}

func TestClassifyMissingRationaleWarns(t *testing.T) {
	bare := func(req *reasoning.Request) (*reasoning.Response, error) {
		resp, _ := goodResponse(req)
		resp.Results[0].Rationale = ""
		return resp, nil
	}

	p := &stubProvider{script: []func(*reasoning.Request) (*reasoning.Response, error){bare}}
	c := newClassifier(t, p, testSettings())

	records, warnings, err := c.Classify(context.Background(), validNarrative)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if records[0].Rationale != "" {
		t.Errorf("rationale = %q, want empty", records[0].Rationale)
	}
	if len(warnings) != 1 || warnings[0].Code != "AE100" {
		t.Errorf("warnings = %v, want one for AE100", warnings)
	}
}

func TestClassifyCancelledContext(t *testing.T) {
	p := &stubProvider{script: []func(*reasoning.Request) (*reasoning.Response, error){goodResponse}}
	c := newClassifier(t, p, testSettings())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := c.Classify(ctx, validNarrative)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
