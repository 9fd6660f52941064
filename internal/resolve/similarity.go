package resolve

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/transform"
)

// Similarity scores two names in [0, 1] as one minus their normalized edit
// distance. Both names are de-spaced and decomposed into Hangul jamo first,
// so a single vowel substitution costs one jamo rather than a whole syllable.
// The score is symmetric and equals 1 exactly when the de-spaced names are
// identical.
func Similarity(a, b string) float64 {
	ja := jamo(a)
	jb := jamo(b)

	longest := max(utf8.RuneCountInString(ja), utf8.RuneCountInString(jb))
	if longest == 0 {
		return 1
	}

	return 1 - float64(levenshtein.ComputeDistance(ja, jb))/float64(longest)
}

// jamo returns s de-spaced and decomposed. Distances are counted in runes.
func jamo(s string) string {
	out, _, err := transform.String(decomposer(), s)
	if err != nil {
		return Despace(s)
	}
	return out
}
