// Package scans owns scan sessions: the ordered collection of foods
// recognized from a stream of scanner batches. A batch is consolidated into
// fragments, each fragment is resolved by the pipeline, and resolved foods
// are appended to the session in scan order. Clearing a session while a
// batch is in flight discards that batch's remaining records.
package scans

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/menucatch/internal/catalog"
	"github.com/JaimeStill/menucatch/internal/pipeline"
	"github.com/JaimeStill/menucatch/internal/resolve"
)

// Item is one text observation reported by the scanner. The scanner may
// report the same ID again with corrected text.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// BatchCommand is the request body for resolving a batch of scanner items.
type BatchCommand struct {
	Items []Item `json:"items"`
}

// Record is a resolved food in a session's collection. RecognizedText keeps
// the raw fragment the food was resolved from.
type Record struct {
	catalog.Food
	RecognizedText string    `json:"recognized_text"`
	FragmentIndex  int       `json:"fragment_index"`
	BatchID        uuid.UUID `json:"batch_id"`
	Score          float64   `json:"score"`
}

// Session is a point-in-time view of a scan session.
type Session struct {
	ID         uuid.UUID `json:"id"`
	Generation int       `json:"generation"`
	Records    []Record  `json:"records"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BatchReport describes how every fragment of a batch was handled.
// Records lists only the records that were appended; Discarded counts
// resolved records dropped because the session was cleared mid-batch.
// Partial marks an archived report of a batch that stopped early; its
// Outcomes cover only the fragments handled before the stop.
type BatchReport struct {
	ID          uuid.UUID          `json:"id"`
	SessionID   uuid.UUID          `json:"session_id"`
	Items       []Item             `json:"items"`
	Fragments   int                `json:"fragments"`
	Resolved    int                `json:"resolved"`
	Skipped     int                `json:"skipped"`
	Discarded   int                `json:"discarded"`
	Outcomes    []pipeline.Outcome `json:"outcomes"`
	Records     []Record           `json:"records"`
	Partial     bool               `json:"partial,omitempty"`
	ArchiveKey  string             `json:"archive_key,omitempty"`
	StartedAt   time.Time          `json:"started_at"`
	CompletedAt time.Time          `json:"completed_at"`
}

// Diagnosis is the result of resolving one fragment without a session or
// a catalog lookup.
type Diagnosis struct {
	Text     string                   `json:"text"`
	Eligible bool                     `json:"eligible"`
	Ranked   resolve.RankedCategories `json:"ranked"`
	Result   resolve.Result           `json:"result"`
}

// ArchiveKey returns the storage key a batch report is archived under.
func ArchiveKey(sessionID, batchID uuid.UUID) string {
	return ArchivePrefix(sessionID) + batchID.String() + ".json"
}

// ArchivePrefix returns the storage prefix for a session's archived batches.
func ArchivePrefix(sessionID uuid.UUID) string {
	return "scans/" + sessionID.String() + "/"
}

func newRecord(o pipeline.Outcome, batchID uuid.UUID) Record {
	return Record{
		Food:           *o.Food,
		RecognizedText: o.Text,
		FragmentIndex:  o.Index,
		BatchID:        batchID,
		Score:          o.Score(),
	}
}
