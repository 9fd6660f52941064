// Package resolve maps noisy scanned text fragments onto canonical catalog
// food names. Resolution narrows each ranked category's reference names by
// Hangul leading-consonant skeleton, scores the survivors by edit-distance
// similarity, and selects a single deterministic winner.
//
// Everything in this package is pure: results depend only on the arguments,
// and the functions are safe for concurrent use.
package resolve

// CategoryCandidates holds the skeleton-matched names of one ranked category.
// Rank is the category's position in the ranked list that produced it.
type CategoryCandidates struct {
	Category string   `json:"category"`
	Rank     int      `json:"rank"`
	Names    []string `json:"names"`
}

// CandidateSet is the per-fragment result of skeleton matching, ordered by
// category rank. Categories without a match are omitted.
type CandidateSet []CategoryCandidates

// Len returns the number of candidate names across all categories.
func (s CandidateSet) Len() int {
	n := 0
	for _, c := range s {
		n += len(c.Names)
	}
	return n
}

// Names returns the matched names for category, or nil.
func (s CandidateSet) Names(category string) []string {
	for _, c := range s {
		if c.Category == category {
			return c.Names
		}
	}
	return nil
}

// Candidate is a scored (name, category) pair. Rank is the category's
// position in the ranked list and Position is the name's position within
// that category's candidates.
type Candidate struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank"`
	Position int     `json:"position"`
}

// Result is the outcome of resolving one fragment. Winner is nil when no
// candidate exists; otherwise it is an element of Candidates.
type Result struct {
	Winner     *Candidate  `json:"winner,omitempty"`
	Candidates []Candidate `json:"candidates"`
}

// Matched reports whether the result has a winner.
func (r Result) Matched() bool {
	return r.Winner != nil
}

// BuildCandidates runs skeleton matching for fragment against each ranked
// category's reference names. Categories missing from index contribute
// nothing. A fresh set is returned on every call.
func BuildCandidates(fragment string, ranked RankedCategories, index *Index) CandidateSet {
	set := CandidateSet{}

	for rank, category := range ranked {
		names := index.lookup(category)
		if len(names) == 0 {
			continue
		}

		matched := Matches(fragment, names)
		if len(matched) == 0 {
			continue
		}

		set = append(set, CategoryCandidates{
			Category: category,
			Rank:     rank,
			Names:    matched,
		})
	}

	return set
}

// Resolve scores every skeleton-matched candidate for fragment and selects
// the winner: highest similarity, then earlier category rank, then earlier
// position within the category. It never fails; with no candidates the
// result has no winner and an empty candidate list.
func Resolve(fragment string, ranked RankedCategories, index *Index) Result {
	set := BuildCandidates(fragment, ranked, index)

	result := Result{
		Candidates: make([]Candidate, 0, set.Len()),
	}

	best := -1
	for _, group := range set {
		for pos, name := range group.Names {
			c := Candidate{
				Name:     name,
				Category: group.Category,
				Score:    Similarity(fragment, name),
				Rank:     group.Rank,
				Position: pos,
			}
			result.Candidates = append(result.Candidates, c)

			// strictly greater keeps the earlier candidate on ties
			if best < 0 || c.Score > result.Candidates[best].Score {
				best = len(result.Candidates) - 1
			}
		}
	}

	if best >= 0 {
		winner := result.Candidates[best]
		result.Winner = &winner
	}

	return result
}
