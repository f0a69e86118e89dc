package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CapitalizeEachWord lower-cases s and upper-cases the first letter of every
// whitespace-separated word. Runs of whitespace are kept as they are.
func CapitalizeEachWord(s string) string {
	if s == "" {
		return ""
	}

	// Casers keep state, so each call gets its own.
	s = cases.Lower(language.Und).String(s)

	var b strings.Builder
	b.Grow(len(s))

	atWordStart := true
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		if unicode.IsSpace(r) {
			atWordStart = true
			b.WriteRune(r)
			continue
		}
		if atWordStart {
			r = unicode.ToUpper(r)
			atWordStart = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
