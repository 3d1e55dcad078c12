package cases

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/skyhook-labs/talon/internal/classifier"
	"github.com/skyhook-labs/talon/internal/narratives"
	"github.com/skyhook-labs/talon/internal/reasoning"
	"github.com/skyhook-labs/talon/internal/taxonomy"
	"github.com/skyhook-labs/talon/internal/workflow"
	"github.com/skyhook-labs/talon/pkg/pagination"
	"github.com/skyhook-labs/talon/pkg/repository"
)

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	narratives narratives.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a case repository implementing the System interface. It
// internally constructs the workflow runtime from the provided
// dependencies.
func New(
	db *sql.DB,
	clf *classifier.Classifier,
	provider reasoning.Provider,
	registry *taxonomy.Registry,
	threshold float64,
	narr narratives.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	rt := &workflow.Runtime{
		Classifier: clf,
		Provider:   provider,
		Registry:   registry,
		Threshold:  threshold,
		Logger:     logger.With("workflow", "classify"),
	}
	return &repo{
		db:         db,
		rt:         rt,
		narratives: narr,
		logger:     logger.With("system", "cases"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[CaseClassification], error) {
	page.Normalize(r.pagination)

	where, args := filters.whereClause(page.Search)

	var total int
	countQ := "SELECT COUNT(*) FROM cases" + where
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count cases: %w", err)
	}

	pageQ := fmt.Sprintf(
		"SELECT %s FROM cases%s ORDER BY classified_at DESC LIMIT $%d OFFSET $%d",
		caseColumns, where, len(args)+1, len(args)+2,
	)
	pageArgs := append(args, page.PageSize, page.Offset())

	items, err := repository.QueryMany(ctx, r.db, pageQ, pageArgs, scanCase)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*CaseClassification, error) {
	q := fmt.Sprintf("SELECT %s FROM cases WHERE id = $1", caseColumns)

	c, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanCase)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) FindByNarrative(ctx context.Context, narrativeID uuid.UUID) (*CaseClassification, error) {
	q := fmt.Sprintf("SELECT %s FROM cases WHERE narrative_id = $1", caseColumns)

	c, err := repository.QueryOne(ctx, r.db, q, []any{narrativeID}, scanCase)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Classify(ctx context.Context, narrativeID uuid.UUID) (*CaseClassification, error) {
	narrative, err := r.narratives.Find(ctx, narrativeID)
	if err != nil {
		return nil, fmt.Errorf("find narrative %s: %w", narrativeID, err)
	}

	result, err := workflow.Execute(ctx, r.rt, narrativeID, narrative.Text)
	if err != nil {
		return nil, fmt.Errorf("classify narrative %s: %w", narrativeID, err)
	}

	c, err := r.persist(ctx, result.Case)
	if err != nil {
		return nil, err
	}

	r.logger.Info("narrative classified",
		"id", c.ID,
		"narrative_id", narrativeID,
		"overall_confidence", c.OverallConfidence,
		"inconsistencies", len(c.Inconsistencies),
	)
	return c, nil
}

// persist upserts the case row keyed by narrative_id and moves the
// narrative into review status within the same transaction.
// Reclassifying resets any prior validation.
func (r *repo) persist(ctx context.Context, cc *CaseClassification) (*CaseClassification, error) {
	records, levels, primary, contributing, inconsistencies, err := marshalCaseColumns(cc)
	if err != nil {
		return nil, err
	}

	upsertQ := fmt.Sprintf(`
		INSERT INTO cases(
			id, narrative_id, records, overall_confidence, levels,
			primary_factors, contributing_factors, inconsistencies,
			model_name, provider_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (narrative_id) DO UPDATE SET
			records = EXCLUDED.records,
			overall_confidence = EXCLUDED.overall_confidence,
			levels = EXCLUDED.levels,
			primary_factors = EXCLUDED.primary_factors,
			contributing_factors = EXCLUDED.contributing_factors,
			inconsistencies = EXCLUDED.inconsistencies,
			model_name = EXCLUDED.model_name,
			provider_name = EXCLUDED.provider_name,
			classified_at = NOW(),
			validated_by = NULL,
			validated_at = NULL
		RETURNING %s`, caseColumns)

	upsertArgs := []any{
		cc.ID,
		cc.NarrativeID,
		records,
		cc.OverallConfidence,
		levels,
		primary,
		contributing,
		inconsistencies,
		cc.ModelName,
		cc.ProviderName,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (CaseClassification, error) {
		saved, err := repository.QueryOne(ctx, tx, upsertQ, upsertArgs, scanCase)
		if err != nil {
			return CaseClassification{}, fmt.Errorf("upsert case: %w", err)
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE narratives SET status = 'review', updated_at = NOW() WHERE id = $1",
			cc.NarrativeID,
		); err != nil {
			return CaseClassification{}, fmt.Errorf("update narrative status: %w", err)
		}

		return saved, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &c, nil
}

func (r *repo) ClassifyPending(ctx context.Context, limit int) ([]BatchOutcome, error) {
	ids, err := r.narratives.PendingIDs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending narratives: %w", err)
	}

	outcomes := make([]BatchOutcome, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(ids)))

	for i, id := range ids {
		g.Go(func() error {
			outcomes[i] = BatchOutcome{NarrativeID: id}

			if gctx.Err() != nil {
				outcomes[i].Error = gctx.Err().Error()
				return nil
			}

			c, err := r.Classify(gctx, id)
			if err != nil {
				outcomes[i].Error = err.Error()
				return nil
			}

			outcomes[i].CaseID = &c.ID
			return nil
		})
	}

	// Goroutines report failures through their outcome entry, so Wait
	// only ever returns a context error.
	if err := g.Wait(); err != nil {
		return outcomes, err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Error != "" {
			failed++
		}
	}

	r.logger.Info("pending narratives classified",
		"total", len(outcomes),
		"failed", failed,
	)
	return outcomes, nil
}

func (r *repo) Validate(ctx context.Context, id uuid.UUID, cmd ValidateCommand) (*CaseClassification, error) {
	validateQ := fmt.Sprintf(`
		UPDATE cases
		SET validated_by = $1, validated_at = NOW()
		WHERE id = $2
		RETURNING %s`, caseColumns)

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (CaseClassification, error) {
		saved, err := repository.QueryOne(ctx, tx, validateQ, []any{cmd.ValidatedBy, id}, scanCase)
		if err != nil {
			return CaseClassification{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE narratives SET status = 'complete', updated_at = NOW() WHERE id = $1 AND status = 'review'",
			saved.NarrativeID,
		); err != nil {
			return CaseClassification{}, ErrInvalidStatus
		}

		return saved, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("case validated",
		"id", c.ID,
		"validated_by", c.ValidatedBy,
	)
	return &c, nil
}

func (r *repo) Override(ctx context.Context, id uuid.UUID, cmd OverrideCommand) (*CaseClassification, error) {
	if cmd.Confidence < 0 || cmd.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %.2f outside [0, 1]", ErrInvalidOverride, cmd.Confidence)
	}

	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, ok := existing.Record(cmd.Code); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecord, cmd.Code)
	}

	revised, err := r.applyOverride(existing, cmd)
	if err != nil {
		return nil, err
	}

	records, levels, primary, contributing, inconsistencies, err := marshalCaseColumns(revised)
	if err != nil {
		return nil, err
	}

	updateQ := fmt.Sprintf(`
		UPDATE cases
		SET records = $1, overall_confidence = $2, levels = $3,
			primary_factors = $4, contributing_factors = $5,
			inconsistencies = $6, validated_by = $7, validated_at = NOW()
		WHERE id = $8
		RETURNING %s`, caseColumns)

	updateArgs := []any{
		records,
		revised.OverallConfidence,
		levels,
		primary,
		contributing,
		inconsistencies,
		cmd.UpdatedBy,
		id,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (CaseClassification, error) {
		saved, err := repository.QueryOne(ctx, tx, updateQ, updateArgs, scanCase)
		if err != nil {
			return CaseClassification{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE narratives SET status = 'complete', updated_at = NOW() WHERE id = $1 AND status = 'review'",
			saved.NarrativeID,
		); err != nil {
			return CaseClassification{}, ErrInvalidStatus
		}

		return saved, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("case overridden",
		"id", c.ID,
		"code", cmd.Code,
		"updated_by", cmd.UpdatedBy,
	)
	return &c, nil
}

// applyOverride replaces one record and recomputes every derived field.
// Repair findings from the original model response are carried forward;
// consistency findings are recomputed against the revised records.
func (r *repo) applyOverride(existing *CaseClassification, cmd OverrideCommand) (*CaseClassification, error) {
	records := make([]Record, len(existing.Records))
	copy(records, existing.Records)

	for i := range records {
		if records[i].Code == cmd.Code {
			records[i].Present = cmd.Present
			records[i].Confidence = cmd.Confidence
			records[i].Rationale = cmd.Rationale
		}
	}

	revised, err := Aggregate(r.rt.Registry, existing.NarrativeID, records)
	if err != nil {
		return nil, fmt.Errorf("reaggregate case: %w", err)
	}

	revised.ID = existing.ID
	revised.ClassifiedAt = existing.ClassifiedAt
	revised.ModelName = existing.ModelName
	revised.ProviderName = existing.ProviderName

	findings := Review(r.rt.Registry, revised, r.rt.Threshold)
	for _, inc := range existing.Inconsistencies {
		if inc.Kind == KindResponseRepair {
			findings = append(findings, inc)
		}
	}
	revised.Inconsistencies = findings

	return revised, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM cases WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case deleted", "id", id)
	return nil
}

func workerCount(pending int) int {
	return max(min(runtime.NumCPU(), pending), 1)
}
