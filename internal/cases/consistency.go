package cases

import (
	"fmt"

	"github.com/skyhook-labs/talon/internal/taxonomy"
)

// overallConfidenceSanityBound triggers the missing-unsafe-acts check:
// a confident case with no Level 1 findings deserves reviewer attention.
const overallConfidenceSanityBound = 0.7

// Review runs the advisory consistency checks against an aggregated case
// and returns the findings. It never mutates records and never fails:
// inconsistent cases are flagged for the human reviewer, not corrected
// or rejected.
func Review(reg *taxonomy.Registry, cc *CaseClassification, threshold float64) []Inconsistency {
	findings := make([]Inconsistency, 0)

	for _, r := range cc.Records {
		if r.Present && r.Confidence < threshold {
			findings = append(findings, Inconsistency{
				Kind:  KindLowConfidencePresence,
				Codes: []string{r.Code},
				Detail: fmt.Sprintf(
					"%s marked present with confidence %.2f below threshold %.2f",
					r.Code, r.Confidence, threshold,
				),
			})
		}
	}

	for _, x := range reg.Exclusions() {
		first, firstOK := cc.Record(x.First)
		second, secondOK := cc.Record(x.Second)
		if firstOK && secondOK && first.Present && second.Present {
			findings = append(findings, Inconsistency{
				Kind:  KindMutualExclusion,
				Codes: []string{x.First, x.Second},
				Detail: fmt.Sprintf(
					"%s and %s are configured as mutually exclusive but both are present",
					x.First, x.Second,
				),
			})
		}
	}

	if cc.OverallConfidence >= overallConfidenceSanityBound && levelCount(cc, taxonomy.LevelUnsafeActs) == 0 {
		findings = append(findings, Inconsistency{
			Kind: KindMissingUnsafeActs,
			Detail: fmt.Sprintf(
				"overall confidence %.2f with no unsafe acts identified at level 1",
				cc.OverallConfidence,
			),
		})
	}

	return findings
}

func levelCount(cc *CaseClassification, level taxonomy.Level) int {
	for _, s := range cc.Levels {
		if s.Level == level {
			return s.Count
		}
	}
	return 0
}
