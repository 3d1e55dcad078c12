package narratives

import (
	"context"

	"github.com/google/uuid"

	"github.com/skyhook-labs/talon/pkg/pagination"
)

// System defines the public contract for narrative domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Narrative], error)

	Find(ctx context.Context, id uuid.UUID) (*Narrative, error)
	PendingIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
	Create(ctx context.Context, cmd CreateCommand) (*Narrative, error)
	Import(ctx context.Context, cmd ImportCommand) (*ImportResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
