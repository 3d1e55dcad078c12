package api

import (
	"fmt"

	"github.com/skyhook-labs/talon/internal/cases"
	"github.com/skyhook-labs/talon/internal/classifier"
	"github.com/skyhook-labs/talon/internal/narratives"
	"github.com/skyhook-labs/talon/internal/reasoning"
	"github.com/skyhook-labs/talon/internal/taxonomy"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Registry   *taxonomy.Registry
	Narratives narratives.System
	Cases      cases.System
}

// NewDomain creates all domain systems from the API runtime. The category
// registry is loaded once and shared by the classifier, the aggregation
// logic, and the taxonomy endpoints.
func NewDomain(runtime *Runtime) (*Domain, error) {
	registry, err := taxonomy.Load(runtime.Classifier.TaxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	provider := reasoning.NewAgentProvider(runtime.Agent, runtime.Logger)

	clf := classifier.New(
		registry,
		provider,
		classifier.Settings{
			MinNarrativeLength: runtime.Classifier.MinNarrativeLength,
			MaxRetries:         runtime.Classifier.MaxRetries,
			RequestTimeout:     runtime.Classifier.RequestTimeoutDuration(),
			RetryBackoff:       runtime.Classifier.RetryBackoffDuration(),
			MaxConcurrent:      int64(runtime.Classifier.MaxConcurrent),
		},
		runtime.Logger,
	)

	narrativesSystem := narratives.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	casesSystem := cases.New(
		runtime.Database.Connection(),
		clf,
		provider,
		registry,
		runtime.Classifier.ConfidenceThreshold,
		narrativesSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Registry:   registry,
		Narratives: narrativesSystem,
		Cases:      casesSystem,
	}, nil
}
