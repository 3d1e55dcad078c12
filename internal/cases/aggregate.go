package cases

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skyhook-labs/talon/internal/taxonomy"
)

// Factor confidence bands carried over from the research prototype:
// present categories above the primary bound are primary factors,
// those within [contributing, primary] are contributing factors.
const (
	primaryFactorBound      = 0.7
	contributingFactorBound = 0.4
)

// Aggregate builds a CaseClassification from a complete record set. The
// supplied records must cover every registered category exactly once;
// anything else is a contract violation by the caller and fails with
// ErrIncompleteRecordSet. Output is deterministic for a given record set
// regardless of input order: records are emitted in registry order and
// ties are broken by ascending category code.
func Aggregate(reg *taxonomy.Registry, narrativeID uuid.UUID, records []Record) (*CaseClassification, error) {
	if len(records) != reg.Len() {
		return nil, fmt.Errorf(
			"%w: got %d records for %d categories",
			ErrIncompleteRecordSet, len(records), reg.Len(),
		)
	}

	byCode := make(map[string]Record, len(records))
	for _, r := range records {
		if !reg.Contains(r.Code) {
			return nil, fmt.Errorf("%w: unknown category %s", ErrIncompleteRecordSet, r.Code)
		}
		if _, dup := byCode[r.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate record for %s", ErrIncompleteRecordSet, r.Code)
		}
		byCode[r.Code] = r
	}

	ordered := make([]Record, 0, reg.Len())
	for _, c := range reg.All() {
		ordered = append(ordered, byCode[c.Code])
	}

	cc := &CaseClassification{
		ID:                  uuid.New(),
		NarrativeID:         narrativeID,
		Records:             ordered,
		Levels:              levelSummaries(reg, byCode),
		OverallConfidence:   overallConfidence(ordered),
		PrimaryFactors:      factorCodes(ordered, func(r Record) bool { return r.Confidence > primaryFactorBound }),
		ContributingFactors: factorCodes(ordered, func(r Record) bool { return r.Confidence >= contributingFactorBound && r.Confidence <= primaryFactorBound }),
		Inconsistencies:     []Inconsistency{},
		ClassifiedAt:        time.Now().UTC(),
	}

	return cc, nil
}

// overallConfidence is the arithmetic mean of confidence over present
// records, defined as exactly 0.0 when nothing is present.
func overallConfidence(records []Record) float64 {
	var sum float64
	var n int
	for _, r := range records {
		if r.Present {
			sum += r.Confidence
			n++
		}
	}

	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}

func levelSummaries(reg *taxonomy.Registry, byCode map[string]Record) []LevelSummary {
	summaries := make([]LevelSummary, 0, 4)

	for _, level := range taxonomy.Levels() {
		s := LevelSummary{Level: level}
		var sum float64
		best := Record{Confidence: -1}

		for _, c := range reg.ByLevel(level) {
			r := byCode[c.Code]
			if !r.Present {
				continue
			}

			s.Count++
			sum += r.Confidence

			// ties resolve to the lexicographically smaller code
			if r.Confidence > best.Confidence || (r.Confidence == best.Confidence && r.Code < best.Code) {
				best = r
			}
		}

		if s.Count > 0 {
			s.AvgConfidence = sum / float64(s.Count)
			s.Dominant = best.Code
		}

		summaries = append(summaries, s)
	}

	return summaries
}

func factorCodes(records []Record, match func(Record) bool) []string {
	codes := make([]string, 0)
	for _, r := range records {
		if r.Present && match(r) {
			codes = append(codes, r.Code)
		}
	}
	return codes
}
