package cases

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/skyhook-labs/talon/pkg/repository"
)

// caseColumns is the canonical projection for case queries. Every query
// that feeds scanCase selects exactly these columns in this order.
const caseColumns = `
	id, narrative_id, records, overall_confidence, levels,
	primary_factors, contributing_factors, inconsistencies,
	model_name, provider_name, classified_at, validated_by, validated_at`

// Filters contains optional filtering criteria for case queries. Nil
// fields are ignored.
type Filters struct {
	NarrativeID   *uuid.UUID `json:"narrative_id,omitempty"`
	ValidatedBy   *string    `json:"validated_by,omitempty"`
	MinConfidence *float64   `json:"min_confidence,omitempty"`
	Validated     *bool      `json:"validated,omitempty"`
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("narrative_id"); n != "" {
		if id, err := uuid.Parse(n); err == nil {
			f.NarrativeID = &id
		}
	}

	if v := values.Get("validated_by"); v != "" {
		f.ValidatedBy = &v
	}

	if m := values.Get("min_confidence"); m != "" {
		if conf, err := strconv.ParseFloat(m, 64); err == nil {
			f.MinConfidence = &conf
		}
	}

	if v := values.Get("validated"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Validated = &b
		}
	}

	return f
}

// whereClause renders the filters and optional search term into a SQL
// WHERE fragment with positional arguments. Returns an empty string when
// nothing applies.
func (f Filters) whereClause(search *string) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.NarrativeID != nil {
		conds = append(conds, "narrative_id = "+arg(*f.NarrativeID))
	}
	if f.ValidatedBy != nil {
		conds = append(conds, "validated_by = "+arg(*f.ValidatedBy))
	}
	if f.MinConfidence != nil {
		conds = append(conds, "overall_confidence >= "+arg(*f.MinConfidence))
	}
	if f.Validated != nil {
		if *f.Validated {
			conds = append(conds, "validated_at IS NOT NULL")
		} else {
			conds = append(conds, "validated_at IS NULL")
		}
	}
	if search != nil && *search != "" {
		conds = append(conds, "records::text ILIKE "+arg("%"+*search+"%"))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanCase(s repository.Scanner) (CaseClassification, error) {
	var c CaseClassification
	var recordsRaw, levelsRaw, primaryRaw, contributingRaw, inconsistenciesRaw []byte

	err := s.Scan(
		&c.ID,
		&c.NarrativeID,
		&recordsRaw,
		&c.OverallConfidence,
		&levelsRaw,
		&primaryRaw,
		&contributingRaw,
		&inconsistenciesRaw,
		&c.ModelName,
		&c.ProviderName,
		&c.ClassifiedAt,
		&c.ValidatedBy,
		&c.ValidatedAt,
	)
	if err != nil {
		return c, err
	}

	fields := []struct {
		raw  []byte
		dest any
		name string
	}{
		{recordsRaw, &c.Records, "records"},
		{levelsRaw, &c.Levels, "levels"},
		{primaryRaw, &c.PrimaryFactors, "primary_factors"},
		{contributingRaw, &c.ContributingFactors, "contributing_factors"},
		{inconsistenciesRaw, &c.Inconsistencies, "inconsistencies"},
	}

	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dest); err != nil {
			return c, fmt.Errorf("unmarshal %s: %w", f.name, err)
		}
	}

	if c.Records == nil {
		c.Records = []Record{}
	}
	if c.PrimaryFactors == nil {
		c.PrimaryFactors = []string{}
	}
	if c.ContributingFactors == nil {
		c.ContributingFactors = []string{}
	}
	if c.Inconsistencies == nil {
		c.Inconsistencies = []Inconsistency{}
	}

	return c, nil
}

func marshalCaseColumns(c *CaseClassification) (records, levels, primary, contributing, inconsistencies []byte, err error) {
	if records, err = json.Marshal(c.Records); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal records: %w", err)
	}
	if levels, err = json.Marshal(c.Levels); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal levels: %w", err)
	}
	if primary, err = json.Marshal(c.PrimaryFactors); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal primary_factors: %w", err)
	}
	if contributing, err = json.Marshal(c.ContributingFactors); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal contributing_factors: %w", err)
	}
	if inconsistencies, err = json.Marshal(c.Inconsistencies); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal inconsistencies: %w", err)
	}
	return records, levels, primary, contributing, inconsistencies, nil
}
