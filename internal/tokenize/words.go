package tokenize

import (
	"strings"
	"unicode"
)

// Words splits a sentence into word tokens. A token is a run of letters,
// digits, or marks; an apostrophe or hyphen is kept only between two such
// runes, so "don't" and "well-known" survive whole. The typographic
// apostrophe is normalized to '. Punctuation never forms a token.
func Words(sentence string) []string {
	var (
		out []string
		b   strings.Builder
	)
	runes := []rune(sentence)
	flush := func() {
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}

	for i, r := range runes {
		switch {
		case isWordRune(r):
			b.WriteRune(r)
		case isJoiner(r) && b.Len() > 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			if r == '’' {
				r = '\''
			}
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '-'
}
