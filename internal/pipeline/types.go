package pipeline

import (
	"github.com/JaimeStill/menucatch/internal/catalog"
	"github.com/JaimeStill/menucatch/internal/resolve"
)

const KeyOutcome = "outcome"

// Status is the terminal state of a fragment.
type Status string

const (
	StatusResolved Status = "resolved"
	StatusSkipped  Status = "skipped"
)

// SkipReason explains why a fragment produced no record.
type SkipReason string

const (
	SkipIneligible       SkipReason = "ineligible"
	SkipClassifierFailed SkipReason = "classifier_failed"
	SkipNoCandidates     SkipReason = "no_candidates"
	SkipNotFound         SkipReason = "not_found"
	SkipLookupFailed     SkipReason = "lookup_failed"
)

// Fragment is one line of scanned text and its position in the batch.
type Fragment struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Outcome accumulates what each node learned about a fragment.
// Food is set only when Status is StatusResolved.
type Outcome struct {
	Index  int                      `json:"index"`
	Text   string                   `json:"text"`
	Status Status                   `json:"status"`
	Reason SkipReason               `json:"reason,omitempty"`
	Error  string                   `json:"error,omitempty"`
	Ranked resolve.RankedCategories `json:"ranked,omitempty"`
	Result *resolve.Result          `json:"result,omitempty"`
	Food   *catalog.Food            `json:"food,omitempty"`
}

// Resolved reports whether the fragment produced a catalog food.
func (o *Outcome) Resolved() bool {
	return o.Status == StatusResolved && o.Food != nil
}

// Score returns the winning similarity score, or zero when there is no winner.
func (o *Outcome) Score() float64 {
	if o.Result == nil || o.Result.Winner == nil {
		return 0
	}
	return o.Result.Winner.Score
}

func (o *Outcome) skip(reason SkipReason, err error) {
	o.Reason = reason
	if err != nil {
		o.Error = err.Error()
	}
}

func (o *Outcome) active() bool {
	return o.Reason == ""
}
