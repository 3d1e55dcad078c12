package narratives

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skyhook-labs/talon/pkg/repository"
)

// narrativeColumns is the canonical projection for narrative queries.
const narrativeColumns = `
	id, external_ref, source, text, status, batch_key, ingested_at, updated_at`

// Filters contains optional filtering criteria for narrative queries.
// Nil fields are ignored. All fields use exact matching except BatchKey,
// which uses case-insensitive contains matching.
type Filters struct {
	Status      *string `json:"status,omitempty"`
	Source      *string `json:"source,omitempty"`
	ExternalRef *string `json:"external_ref,omitempty"`
	BatchKey    *string `json:"batch_key,omitempty"`
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if s := values.Get("source"); s != "" {
		f.Source = &s
	}

	if r := values.Get("external_ref"); r != "" {
		f.ExternalRef = &r
	}

	if b := values.Get("batch_key"); b != "" {
		f.BatchKey = &b
	}

	return f
}

// whereClause renders the filters and optional search term into a SQL
// WHERE fragment with positional arguments.
func (f Filters) whereClause(search *string) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != nil {
		conds = append(conds, "status = "+arg(*f.Status))
	}
	if f.Source != nil {
		conds = append(conds, "source = "+arg(*f.Source))
	}
	if f.ExternalRef != nil {
		conds = append(conds, "external_ref = "+arg(*f.ExternalRef))
	}
	if f.BatchKey != nil {
		conds = append(conds, "batch_key ILIKE "+arg("%"+*f.BatchKey+"%"))
	}
	if search != nil && *search != "" {
		conds = append(conds, "text ILIKE "+arg("%"+*search+"%"))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanNarrative(s repository.Scanner) (Narrative, error) {
	var n Narrative
	err := s.Scan(
		&n.ID,
		&n.ExternalRef,
		&n.Source,
		&n.Text,
		&n.Status,
		&n.BatchKey,
		&n.IngestedAt,
		&n.UpdatedAt,
	)
	return n, err
}
