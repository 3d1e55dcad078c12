package formatting_test

import (
	"errors"
	"testing"

	"github.com/skyhook-labs/talon/pkg/formatting"
)

type payload struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
}

func TestParseBareJSON(t *testing.T) {
	content := `{"code": "AE100", "confidence": 0.8}`

	result, err := formatting.Parse[payload](content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Code != "AE100" || result.Confidence != 0.8 {
		t.Errorf("result = %+v", result)
	}
}

func TestParseFencedJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"json fence",
			"```json\n{\"code\": \"PE100\", \"confidence\": 0.5}\n```",
		},
		{
			"bare fence",
			"```\n{\"code\": \"PE100\", \"confidence\": 0.5}\n```",
		},
		{
			"fence with surrounding prose",
			"Here is the result:\n```json\n{\"code\": \"PE100\", \"confidence\": 0.5}\n```\nLet me know if you need anything else.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := formatting.Parse[payload](tt.content)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if result.Code != "PE100" {
				t.Errorf("result = %+v", result)
			}
		})
	}
}

func TestParseSlice(t *testing.T) {
	content := `[{"code": "AE100", "confidence": 0.9}, {"code": "AE200", "confidence": 0.1}]`

	results, err := formatting.Parse[[]payload](content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(results) != 2 || results[1].Code != "AE200" {
		t.Errorf("results = %+v", results)
	}
}

func TestParseFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain text", "the model refused to answer"},
		{"truncated json", `{"code": "AE100", "confi`},
		{"fence with invalid body", "```json\nnot json at all\n```"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formatting.Parse[payload](tt.content)
			if !errors.Is(err, formatting.ErrParseFailed) {
				t.Errorf("error = %v, want ErrParseFailed", err)
			}
		})
	}
}
