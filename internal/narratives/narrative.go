// Package narratives implements the accident narrative domain for Talon.
// It provides types, data access, and business logic for narrative
// registration, CSV batch import, and blob archive integration.
package narratives

import (
	"time"

	"github.com/google/uuid"
)

// Narrative lifecycle statuses. A narrative starts pending, moves to
// review once classified, and completes after human validation.
const (
	StatusPending  = "pending"
	StatusReview   = "review"
	StatusComplete = "complete"
)

// Narrative represents a registered accident narrative awaiting or
// undergoing classification.
type Narrative struct {
	ID          uuid.UUID `json:"id"`
	ExternalRef string    `json:"external_ref"`
	Source      string    `json:"source"`
	Text        string    `json:"text"`
	Status      string    `json:"status"`
	BatchKey    *string   `json:"batch_key"`
	IngestedAt  time.Time `json:"ingested_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a single narrative.
// ExternalRef is the upstream accident report identifier and may be empty.
type CreateCommand struct {
	ExternalRef string `json:"external_ref"`
	Source      string `json:"source"`
	Text        string `json:"text"`
}

// ImportCommand carries a raw CSV batch for import. Data holds the file
// bytes; TextColumn and RefColumn name the source columns, with TextColumn
// defaulting to "narrative" when empty.
type ImportCommand struct {
	Data       []byte
	Filename   string
	Source     string
	TextColumn string
	RefColumn  string
}

// RowResult reports the outcome of a single CSV row within a batch import.
// On success, Narrative is populated and Error is empty.
type RowResult struct {
	Row       int        `json:"row"`
	Narrative *Narrative `json:"narrative,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// ImportResult summarizes a batch import: the archive key of the raw CSV
// in blob storage and one result per data row.
type ImportResult struct {
	BatchKey string      `json:"batch_key"`
	Total    int         `json:"total"`
	Imported int         `json:"imported"`
	Results  []RowResult `json:"results"`
}
