package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	syllableBase  = 0xAC00
	syllableLast  = 0xD7A3
	syllableBlock = 21 * 28

	leadingBase = 0x1100
	leadingLast = 0x1112
)

// choseong maps a leading consonant index to its compatibility jamo.
var choseong = [19]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

var whitespace = runes.In(unicode.White_Space)

// Chains carry buffers between calls, so each use builds its own.
func composer() transform.Transformer {
	return transform.Chain(norm.NFKC, runes.Remove(whitespace))
}

func decomposer() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(whitespace))
}

// Despace returns name in compatibility-composed form with every
// whitespace rune removed.
func Despace(name string) string {
	out, _, err := transform.String(composer(), name)
	if err != nil {
		return strings.Join(strings.Fields(name), "")
	}
	return out
}

// Skeleton reduces name to its leading-consonant key. Each precomposed
// Hangul syllable becomes its choseong; a bare leading jamo becomes its
// compatibility form; every other rune passes through unchanged.
func Skeleton(name string) string {
	despaced := Despace(name)

	var b strings.Builder
	b.Grow(len(despaced))

	for _, r := range despaced {
		b.WriteRune(leadingConsonant(r))
	}

	return b.String()
}

// Matches returns every reference name whose skeleton equals the skeleton
// of fragment, in the order given. A fragment with an empty skeleton
// matches nothing.
func Matches(fragment string, referenceNames []string) []string {
	key := Skeleton(fragment)
	if key == "" {
		return nil
	}

	var matched []string
	for _, name := range referenceNames {
		if Skeleton(name) == key {
			matched = append(matched, name)
		}
	}

	return matched
}

func leadingConsonant(r rune) rune {
	switch {
	case r >= syllableBase && r <= syllableLast:
		return choseong[(r-syllableBase)/syllableBlock]
	case r >= leadingBase && r <= leadingLast:
		return choseong[r-leadingBase]
	default:
		return r
	}
}
