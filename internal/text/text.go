// Package text provides tokenization and normalization for search.
package text

import (
	"strings"
	"unicode"
)

// Tokenize lowercases the input, splits it on runs of non-alphanumeric
// characters, and singularizes each piece. Empty pieces are dropped.
// Always returns a (possibly empty) slice; order follows the input.
func Tokenize(s string) []string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := Singularize(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Singularize strips common English plural suffixes:
// "ies" -> "y", "sses"/"shes"/"ches" drop the trailing "es",
// otherwise a trailing "s" (but not "ss") is dropped.
// The last rule intentionally also turns short words like "bus" into "bu";
// changing that would shift ranking for terms and surnames ending in a
// single "s", so it is kept as-is.
func Singularize(w string) string {
	switch {
	case strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "sses"), strings.HasSuffix(w, "shes"), strings.HasSuffix(w, "ches"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return w[:len(w)-1]
	default:
		return w
	}
}

// Words splits on whitespace and returns lowercased, trimmed words of
// length >= 2. Used for vocabulary accumulation, where the original
// word form (not the singularized token) is indexed.
func Words(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) >= 2 {
			words = append(words, f)
		}
	}
	return words
}

// Sentences splits text into sentences on ".", "!" or "?" followed by
// whitespace. The terminator stays attached to its sentence.
func Sentences(s string) []string {
	var out []string
	start := 0
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if sent := strings.TrimSpace(string(runes[start : i+1])); sent != "" {
			out = append(out, sent)
		}
		start = i + 1
	}
	if sent := strings.TrimSpace(string(runes[start:])); sent != "" {
		out = append(out, sent)
	}
	return out
}
