package classifier

import (
	"context"
	"slices"

	"github.com/jbrukh/bayesian"

	"github.com/JaimeStill/menucatch/internal/resolve"
)

const (
	boundary       = '^'
	skeletonMarker = '#'
)

// Lexicon is a naive Bayes classifier over character bigrams trained from
// the catalog's own reference names. It needs no model endpoint and ranks
// deterministically: equal scores keep the index's category order.
type Lexicon struct {
	categories []string
	model      *bayesian.Classifier
	vocab      map[string]map[string]struct{}
}

// NewLexicon trains a Lexicon from every name in index. The model needs two
// classes, so an index with a single category is answered from its
// vocabulary alone.
func NewLexicon(index *resolve.Index) *Lexicon {
	l := &Lexicon{
		categories: index.Categories(),
		vocab:      make(map[string]map[string]struct{}),
	}

	if len(l.categories) > 1 {
		classes := make([]bayesian.Class, len(l.categories))
		for i, category := range l.categories {
			classes[i] = bayesian.Class(category)
		}
		l.model = bayesian.NewClassifier(classes...)
	}

	for _, category := range l.categories {
		names, _ := index.Names(category)
		seen := make(map[string]struct{})

		for _, name := range names {
			grams := features(name)
			for _, g := range grams {
				seen[g] = struct{}{}
			}
			if l.model != nil && len(grams) > 0 {
				l.model.Learn(grams, bayesian.Class(category))
			}
		}

		l.vocab[category] = seen
	}

	return l
}

// Predict scores text against every trained category that shares at least
// one feature with it and returns up to maxHypotheses by descending
// log-likelihood.
func (l *Lexicon) Predict(ctx context.Context, text string, maxHypotheses int) ([]resolve.Hypothesis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grams := features(text)
	if len(grams) == 0 || maxHypotheses < 1 {
		return []resolve.Hypothesis{}, nil
	}

	scores := make([]float64, len(l.categories))
	if l.model != nil {
		scores, _, _ = l.model.LogScores(grams)
	}

	hypotheses := make([]resolve.Hypothesis, 0, len(l.categories))
	for i, category := range l.categories {
		if !l.overlaps(category, grams) {
			continue
		}
		hypotheses = append(hypotheses, resolve.Hypothesis{
			Label: category,
			Score: scores[i],
		})
	}

	slices.SortStableFunc(hypotheses, func(a, b resolve.Hypothesis) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(hypotheses) > maxHypotheses {
		hypotheses = hypotheses[:maxHypotheses]
	}

	return hypotheses, nil
}

func (l *Lexicon) overlaps(category string, grams []string) bool {
	vocab := l.vocab[category]
	for _, g := range grams {
		if _, ok := vocab[g]; ok {
			return true
		}
	}
	return false
}

// features returns the bigrams of the de-spaced name followed by the
// bigrams of its skeleton, both padded with boundary markers.
func features(name string) []string {
	despaced := resolve.Despace(name)
	if despaced == "" {
		return nil
	}

	grams := bigrams([]rune(despaced), boundary)
	return append(grams, bigrams([]rune(resolve.Skeleton(despaced)), skeletonMarker)...)
}

func bigrams(runes []rune, pad rune) []string {
	padded := make([]rune, 0, len(runes)+2)
	padded = append(padded, pad)
	padded = append(padded, runes...)
	padded = append(padded, pad)

	grams := make([]string, 0, len(padded)-1)
	for i := 0; i+1 < len(padded); i++ {
		grams = append(grams, string(padded[i:i+2]))
	}
	return grams
}
