package resolve

import (
	"cmp"
	"context"
	"slices"
	"strings"
)

// DefaultMaxHypotheses is the number of category hypotheses requested per
// fragment when none is configured.
const DefaultMaxHypotheses = 8

// Hypothesis is one category guess from a classifier. Scores are on the
// classifier's own scale and are only compared against each other.
type Hypothesis struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier predicts the food categories a fragment most likely belongs to.
// It may return fewer hypotheses than requested.
type Classifier interface {
	Predict(ctx context.Context, text string, maxHypotheses int) ([]Hypothesis, error)
}

// RankedCategories lists category labels by descending confidence without
// duplicates.
type RankedCategories []string

// Rank asks c for at most maxHypotheses category guesses for fragment and
// orders the labels by descending score. Equal scores keep the classifier's
// emission order, NaN scores sort last, and only the first occurrence of a
// repeated label is kept. Zero hypotheses yield an empty list.
func Rank(ctx context.Context, c Classifier, fragment string, maxHypotheses int) (RankedCategories, error) {
	if maxHypotheses < 1 {
		return RankedCategories{}, nil
	}

	hypotheses, err := c.Predict(ctx, fragment, maxHypotheses)
	if err != nil {
		return nil, err
	}

	return Order(hypotheses, maxHypotheses), nil
}

// Order applies the ranking rules of Rank to an existing hypothesis list.
// The list is sorted before it is cut to maxHypotheses, so an over-long
// classifier response still yields its strongest labels.
func Order(hypotheses []Hypothesis, maxHypotheses int) RankedCategories {
	if maxHypotheses < 1 {
		return RankedCategories{}
	}

	sorted := slices.Clone(hypotheses)
	slices.SortStableFunc(sorted, func(a, b Hypothesis) int {
		return cmp.Compare(b.Score, a.Score)
	})

	ranked := make(RankedCategories, 0, len(sorted))
	seen := make(map[string]struct{}, len(sorted))

	for _, h := range sorted {
		label := strings.TrimSpace(h.Label)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		ranked = append(ranked, label)
		if len(ranked) == maxHypotheses {
			break
		}
	}

	return ranked
}
