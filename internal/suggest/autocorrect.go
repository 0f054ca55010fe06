package suggest

import (
	"strings"

	"github.com/paperfind/paperfind/internal/similarity"
	"github.com/paperfind/paperfind/internal/vocab"
)

// CorrectionThreshold is the minimum similarity between a query word and
// its best vocabulary match for the substitution to apply.
const CorrectionThreshold = 0.70

// Autocorrect rewrites a phrase word by word: each word is replaced by
// its single best direct suggestion when similar enough, otherwise kept.
// Words are rejoined with single spaces.
func Autocorrect(query string, v vocab.Vocabulary) string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return strings.TrimSpace(query)
	}
	corrected := make([]string, len(words))
	for i, w := range words {
		corrected[i] = correctWord(w, v)
	}
	return strings.Join(corrected, " ")
}

// correctWord finds the best direct match for one word and substitutes it
// when the similarity clears CorrectionThreshold.
func correctWord(w string, v vocab.Vocabulary) string {
	best := Suggest(w, v, 1)
	if len(best) == 0 {
		return w
	}
	if similarity.Score(w, best[0]) >= CorrectionThreshold {
		return best[0]
	}
	return w
}

// DidYouMean builds the candidate list shown when a search returns zero
// results: the autocorrected phrase plus up to n fuzzy suggestions for
// the whole query, excluding anything equal to the original query.
func DidYouMean(query string, v vocab.Vocabulary, n int) []string {
	query = strings.TrimSpace(query)
	if query == "" || n <= 0 {
		return nil
	}
	lowered := strings.ToLower(query)

	var out []string
	seen := map[string]struct{}{lowered: {}}
	add := func(c string) {
		key := strings.ToLower(c)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}

	if corrected := Autocorrect(query, v); !strings.EqualFold(corrected, query) {
		add(corrected)
	}
	for _, s := range fuzzyPass(lowered, v, n) {
		if len(out) >= n {
			break
		}
		add(s)
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}
