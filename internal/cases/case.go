// Package cases implements the case classification domain for Talon:
// the per-category record model, aggregation into case-level summaries,
// advisory consistency review, and the persistence and HTTP surfaces for
// classified cases.
package cases

import (
	"time"

	"github.com/google/uuid"

	"github.com/skyhook-labs/talon/internal/classifier"
	"github.com/skyhook-labs/talon/internal/taxonomy"
)

// Record is the validated per-category judgment produced by the
// classifier; aliased here since the case model owns its storage and
// aggregation.
type Record = classifier.Record

// LevelSummary rolls up the present categories at one hierarchy level.
// Dominant is the code of the present category with the highest
// confidence at that level, ties broken by ascending code; empty when no
// category at the level is present.
type LevelSummary struct {
	Level         taxonomy.Level `json:"level"`
	Count         int            `json:"count"`
	AvgConfidence float64        `json:"avg_confidence"`
	Dominant      string         `json:"dominant,omitempty"`
}

// Inconsistency kinds produced by the review pass.
const (
	KindLowConfidencePresence = "low_confidence_presence"
	KindMutualExclusion       = "mutual_exclusion"
	KindMissingUnsafeActs     = "missing_unsafe_acts"
	KindResponseRepair        = "response_repair"
)

// Inconsistency is an advisory finding attached to a case. It never
// blocks the case from being returned; callers decide whether to surface
// it to a reviewer or reject the result.
type Inconsistency struct {
	Kind   string   `json:"kind"`
	Codes  []string `json:"codes,omitempty"`
	Detail string   `json:"detail"`
}

// CaseClassification is the complete classification result for one
// narrative: one record per registered category, derived summaries, and
// any advisory inconsistencies. Read-only once built.
type CaseClassification struct {
	ID                  uuid.UUID       `json:"id"`
	NarrativeID         uuid.UUID       `json:"narrative_id"`
	Records             []Record        `json:"records"`
	OverallConfidence   float64         `json:"overall_confidence"`
	Levels              []LevelSummary  `json:"levels"`
	PrimaryFactors      []string        `json:"primary_factors"`
	ContributingFactors []string        `json:"contributing_factors"`
	Inconsistencies     []Inconsistency `json:"inconsistencies"`
	ModelName           string          `json:"model_name"`
	ProviderName        string          `json:"provider_name"`
	ClassifiedAt        time.Time       `json:"classified_at"`
	ValidatedBy         *string         `json:"validated_by"`
	ValidatedAt         *time.Time      `json:"validated_at"`
}

// Record returns the record for the given category code, or false when
// the code is not part of the case.
func (c *CaseClassification) Record(code string) (Record, bool) {
	for _, r := range c.Records {
		if r.Code == code {
			return r, true
		}
	}
	return Record{}, false
}

// ValidateCommand carries the data needed to confirm a case.
// ValidatedBy identifies the human reviewer.
type ValidateCommand struct {
	ValidatedBy string `json:"validated_by"`
}

// OverrideCommand carries a manual correction for a single category
// record. The case's derived summaries are recomputed after the
// override is applied.
type OverrideCommand struct {
	Code       string  `json:"code"`
	Present    bool    `json:"present"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
	UpdatedBy  string  `json:"updated_by"`
}
