package narratives

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/skyhook-labs/talon/pkg/pagination"
	"github.com/skyhook-labs/talon/pkg/repository"
	"github.com/skyhook-labs/talon/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a narrative repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "narratives"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Narrative], error) {
	page.Normalize(r.pagination)

	where, args := filters.whereClause(page.Search)

	var total int
	countQ := "SELECT COUNT(*) FROM narratives" + where
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count narratives: %w", err)
	}

	pageQ := fmt.Sprintf(
		"SELECT %s FROM narratives%s ORDER BY ingested_at DESC LIMIT $%d OFFSET $%d",
		narrativeColumns, where, len(args)+1, len(args)+2,
	)
	pageArgs := append(args, page.PageSize, page.Offset())

	items, err := repository.QueryMany(ctx, r.db, pageQ, pageArgs, scanNarrative)
	if err != nil {
		return nil, fmt.Errorf("query narratives: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Narrative, error) {
	q := fmt.Sprintf("SELECT %s FROM narratives WHERE id = $1", narrativeColumns)

	n, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanNarrative)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &n, nil
}

// PendingIDs returns the IDs of pending narratives in ingestion order.
// A limit of 0 returns all pending narratives.
func (r *repo) PendingIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	q := "SELECT id FROM narratives WHERE status = 'pending' ORDER BY ingested_at"
	var args []any
	if limit > 0 {
		q += " LIMIT $1"
		args = append(args, limit)
	}

	return repository.QueryMany(ctx, r.db, q, args, func(s repository.Scanner) (uuid.UUID, error) {
		var id uuid.UUID
		err := s.Scan(&id)
		return id, err
	})
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Narrative, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, ErrEmptyText
	}

	n, err := r.insert(ctx, cmd.ExternalRef, cmd.Source, cmd.Text, nil)
	if err != nil {
		return nil, err
	}

	r.logger.Info("narrative created", "id", n.ID, "source", n.Source)
	return n, nil
}

// Import archives the raw CSV to blob storage, then registers each data
// row. Row failures are reported per row and never abort the batch; the
// archive remains even when every row fails so the upload can be audited.
func (r *repo) Import(ctx context.Context, cmd ImportCommand) (*ImportResult, error) {
	rows, err := parseBatch(cmd.Data, cmd.TextColumn, cmd.RefColumn)
	if err != nil {
		return nil, err
	}

	key := buildBatchKey(uuid.New(), sanitizeFilename(cmd.Filename))
	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), "text/csv"); err != nil {
		return nil, fmt.Errorf("archive batch: %w", err)
	}

	source := cmd.Source
	if source == "" {
		source = cmd.Filename
	}

	result := &ImportResult{
		BatchKey: key,
		Total:    len(rows),
		Results:  make([]RowResult, 0, len(rows)),
	}

	for _, row := range rows {
		rr := RowResult{Row: row.Row}

		if row.Err != "" {
			rr.Error = row.Err
			result.Results = append(result.Results, rr)
			continue
		}

		n, err := r.insert(ctx, row.Ref, source, row.Text, &key)
		if err != nil {
			rr.Error = err.Error()
			result.Results = append(result.Results, rr)
			continue
		}

		rr.Narrative = n
		result.Imported++
		result.Results = append(result.Results, rr)
	}

	r.logger.Info("batch imported",
		"batch_key", key,
		"total", result.Total,
		"imported", result.Imported,
	)
	return result, nil
}

func (r *repo) insert(ctx context.Context, externalRef, source, text string, batchKey *string) (*Narrative, error) {
	q := fmt.Sprintf(`
		INSERT INTO narratives(id, external_ref, source, text, batch_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, narrativeColumns)

	insertArgs := []any{uuid.New(), externalRef, source, text, batchKey}

	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Narrative, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanNarrative)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &n, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM narratives WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("narrative deleted", "id", id)
	return nil
}

func buildBatchKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("batches/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "batch.csv"
	}
	return url.PathEscape(name)
}
