package mentions

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes accented characters and removes the combining
// marks, so "Adéola" normalizes the same as "Adeola". ASR output rarely
// carries diacritics even when the name does.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text, strips diacritics and punctuation, and collapses
// whitespace. Handle separators (underscore, dot, at) become spaces so that
// "nedu_codes" and "nedu codes" normalize identically.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	if out, _, err := transform.String(stripDiacritics, text); err == nil {
		text = out
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '.' || r == '@' || unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes text and splits it into word tokens.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
