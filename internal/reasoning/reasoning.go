// Package reasoning defines the boundary to the external reasoning
// provider that judges narratives against the HFACS taxonomy, along with
// the go-agents-backed implementation used in production.
package reasoning

import "context"

// CategoryRef is the subset of category metadata submitted to the provider.
type CategoryRef struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Request carries one narrative and the category set to judge it against.
type Request struct {
	Narrative  string
	Categories []CategoryRef
}

// Judgment is the provider's verdict for a single category.
type Judgment struct {
	Code       string  `json:"category_id"`
	Present    bool    `json:"present"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Response is the provider's complete per-category output for a request.
// The classifier validates it against the registry before any judgment
// flows into aggregation.
type Response struct {
	Results []Judgment
}

// Provider is the capability interface for narrative judgment. The
// production implementation delegates to a go-agents chat agent; tests
// substitute stubs.
type Provider interface {
	// Judge evaluates the narrative against every submitted category.
	// Failures are wrapped in one of the sentinel kinds in errors.go so
	// the classifier can select a retry policy.
	Judge(ctx context.Context, req *Request) (*Response, error)
	// Model returns the model identifier used for judgments.
	Model() string
	// Name returns the provider implementation name.
	Name() string
}
