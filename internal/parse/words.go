package parse

import (
	"strings"
	"unicode"
)

// ExtractWords lower-cases the body, splits it on runs of non-letter,
// non-digit characters, and drops stopwords, the media placeholder, and
// (unless KeepNumeric) digit-only tokens. Punctuation-only tokens dissolve
// in the split itself.
func ExtractWords(body string, stop map[string]bool, cfg Config) []string {
	lower := strings.ToLower(body)
	if cfg.MediaToken != "" {
		lower = strings.ReplaceAll(lower, strings.ToLower(cfg.MediaToken), " ")
	}

	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var words []string
	for _, w := range fields {
		if stop[w] {
			continue
		}
		if !cfg.KeepNumeric && isNumeric(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
