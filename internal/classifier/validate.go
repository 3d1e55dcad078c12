package classifier

import (
	"fmt"

	"github.com/skyhook-labs/talon/internal/reasoning"
)

// validate checks a provider response against the registry and converts
// it into records. Structural problems (missing, duplicate, or unknown
// categories) are malformed responses and feed the retry path.
// Repairable defects (out-of-range confidence, missing rationale) are
// fixed and reported as warnings rather than failing the response.
func (c *Classifier) validate(resp *reasoning.Response) ([]Record, []Warning, error) {
	byCode := make(map[string]reasoning.Judgment, len(resp.Results))
	for _, j := range resp.Results {
		if !c.registry.Contains(j.Code) {
			return nil, nil, fmt.Errorf(
				"%w: unknown category %s", reasoning.ErrMalformedResponse, j.Code,
			)
		}
		if _, dup := byCode[j.Code]; dup {
			return nil, nil, fmt.Errorf(
				"%w: duplicate judgment for %s", reasoning.ErrMalformedResponse, j.Code,
			)
		}
		byCode[j.Code] = j
	}

	if len(byCode) != c.registry.Len() {
		return nil, nil, fmt.Errorf(
			"%w: got %d judgments for %d categories",
			reasoning.ErrMalformedResponse, len(byCode), c.registry.Len(),
		)
	}

	records := make([]Record, 0, c.registry.Len())
	warnings := make([]Warning, 0)

	for _, cat := range c.registry.All() {
		j := byCode[cat.Code]

		confidence := j.Confidence
		if confidence < 0.0 || confidence > 1.0 {
			clamped := clamp(confidence)
			warnings = append(warnings, Warning{
				Code: cat.Code,
				Detail: fmt.Sprintf(
					"confidence %.3f out of range, clamped to %.1f", confidence, clamped,
				),
			})
			confidence = clamped
		}

		if j.Present && j.Rationale == "" {
			warnings = append(warnings, Warning{
				Code:   cat.Code,
				Detail: "present without rationale, defaulted to empty",
			})
		}

		records = append(records, Record{
			Code:       cat.Code,
			Present:    j.Present,
			Confidence: confidence,
			Rationale:  j.Rationale,
		})
	}

	return records, warnings, nil
}

func clamp(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
