package cases

import (
	"context"

	"github.com/google/uuid"

	"github.com/skyhook-labs/talon/pkg/pagination"
)

// BatchOutcome reports the result of one narrative in a batch
// classification run. Error is empty on success.
type BatchOutcome struct {
	NarrativeID uuid.UUID  `json:"narrative_id"`
	CaseID      *uuid.UUID `json:"case_id,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// System defines the public contract for case domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[CaseClassification], error)

	Find(ctx context.Context, id uuid.UUID) (*CaseClassification, error)
	FindByNarrative(ctx context.Context, narrativeID uuid.UUID) (*CaseClassification, error)
	Classify(ctx context.Context, narrativeID uuid.UUID) (*CaseClassification, error)
	ClassifyPending(ctx context.Context, limit int) ([]BatchOutcome, error)
	Validate(ctx context.Context, id uuid.UUID, cmd ValidateCommand) (*CaseClassification, error)
	Override(ctx context.Context, id uuid.UUID, cmd OverrideCommand) (*CaseClassification, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
