package cases_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/skyhook-labs/talon/internal/cases"
)

func countKind(findings []cases.Inconsistency, kind string) int {
	var n int
	for _, f := range findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

func TestReviewCleanCase(t *testing.T) {
	reg := testRegistry(t)

	cc, err := cases.Aggregate(reg, uuid.New(), fullRecordSet())
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	findings := cases.Review(reg, cc, 0.5)
	if len(findings) != 0 {
		t.Errorf("findings = %v, want none", findings)
	}
}

func TestReviewLowConfidencePresence(t *testing.T) {
	reg := testRegistry(t)

	records := fullRecordSet()
	for i := range records {
		if records[i].Code == "PE100" {
			records[i].Confidence = 0.3
		}
	}

	cc, err := cases.Aggregate(reg, uuid.New(), records)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	findings := cases.Review(reg, cc, 0.5)

	if got := countKind(findings, cases.KindLowConfidencePresence); got != 1 {
		t.Fatalf("low confidence findings = %d, want exactly 1", got)
	}

	for _, f := range findings {
		if f.Kind == cases.KindLowConfidencePresence {
			if len(f.Codes) != 1 || f.Codes[0] != "PE100" {
				t.Errorf("codes = %v, want [PE100]", f.Codes)
			}
		}
	}
}

func TestReviewMutualExclusion(t *testing.T) {
	reg := testRegistry(t)

	records := fullRecordSet()
	for i := range records {
		if records[i].Code == "AE200" {
			records[i].Present = true
			records[i].Confidence = 0.8
		}
	}

	cc, err := cases.Aggregate(reg, uuid.New(), records)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	findings := cases.Review(reg, cc, 0.5)

	if got := countKind(findings, cases.KindMutualExclusion); got != 1 {
		t.Fatalf("mutual exclusion findings = %d, want 1", got)
	}

	for _, f := range findings {
		if f.Kind == cases.KindMutualExclusion {
			if len(f.Codes) != 2 || f.Codes[0] != "AE100" || f.Codes[1] != "AE200" {
				t.Errorf("codes = %v, want [AE100 AE200]", f.Codes)
			}
		}
	}
}

func TestReviewMissingUnsafeActs(t *testing.T) {
	reg := testRegistry(t)

	records := fullRecordSet()
	for i := range records {
		switch records[i].Code {
		case "AE100":
			records[i].Present = false
		case "PE100":
			records[i].Confidence = 0.8
		}
	}

	cc, err := cases.Aggregate(reg, uuid.New(), records)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	// present: PE100 0.8, OR100 0.8 -> overall 0.8 with no level 1 findings
	findings := cases.Review(reg, cc, 0.5)

	if got := countKind(findings, cases.KindMissingUnsafeActs); got != 1 {
		t.Errorf("missing unsafe acts findings = %d, want 1", got)
	}
}

func TestReviewMissingUnsafeActsBelowBound(t *testing.T) {
	reg := testRegistry(t)

	records := fullRecordSet()
	for i := range records {
		switch records[i].Code {
		case "AE100":
			records[i].Present = false
		case "PE100":
			records[i].Confidence = 0.5
		case "OR100":
			records[i].Confidence = 0.5
		}
	}

	cc, err := cases.Aggregate(reg, uuid.New(), records)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	// overall 0.5 stays below the sanity bound, so no finding
	findings := cases.Review(reg, cc, 0.4)

	if got := countKind(findings, cases.KindMissingUnsafeActs); got != 0 {
		t.Errorf("missing unsafe acts findings = %d, want 0", got)
	}
}
