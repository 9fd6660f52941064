package resolve

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Default fragment length bounds, measured in runes after whitespace removal.
const (
	DefaultMinLength = 2
	DefaultMaxLength = 30
)

// Filter decides whether a scanned fragment is worth resolving.
// A MaxLength of zero disables the upper bound.
type Filter struct {
	MinLength int
	MaxLength int
}

// DefaultFilter returns a Filter with the default length bounds.
func DefaultFilter() Filter {
	return Filter{
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
	}
}

// Eligible reports whether fragment may name a food. It rejects invalid
// UTF-8, blank text, text without a single letter, and text whose de-spaced
// length falls outside the filter bounds.
func (f Filter) Eligible(fragment string) bool {
	if !utf8.ValidString(fragment) {
		return false
	}

	if strings.TrimSpace(fragment) == "" {
		return false
	}

	if !strings.ContainsFunc(fragment, unicode.IsLetter) {
		return false
	}

	n := utf8.RuneCountInString(Despace(fragment))

	if n < max(f.MinLength, 1) {
		return false
	}
	if f.MaxLength > 0 && n > f.MaxLength {
		return false
	}

	return true
}
