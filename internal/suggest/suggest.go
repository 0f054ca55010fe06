// Package suggest ranks typeahead completions against the vocabulary.
package suggest

import (
	"sort"
	"strings"

	"github.com/paperfind/paperfind/internal/similarity"
	"github.com/paperfind/paperfind/internal/text"
	"github.com/paperfind/paperfind/internal/vocab"
)

// FuzzyThreshold is the minimum averaged token similarity for a term to
// survive the fuzzy pass.
const FuzzyThreshold = 0.55

// Suggest returns up to limit vocabulary terms for a partial query.
// Exact-substring matches come first (prefix matches before the rest,
// then by frequency); when those fall short of the limit, fuzzy matches
// at FuzzyThreshold top the list up. Output is deduplicated and, for a
// fixed vocabulary, deterministic.
func Suggest(query string, v vocab.Vocabulary, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}

	direct := directPass(query, v, limit)
	if len(direct) >= limit {
		return direct[:limit]
	}

	out := direct
	seen := make(map[string]struct{}, limit)
	for _, t := range direct {
		seen[t] = struct{}{}
	}
	for _, t := range fuzzyPass(query, v, limit) {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out
}

type candidate struct {
	term   string
	freq   int
	prefix bool
	score  float64
}

// directPass selects terms containing the query as a substring, ordered
// prefix-first then by frequency, with the term itself as the final
// tie-break so output never depends on map iteration order.
func directPass(query string, v vocab.Vocabulary, limit int) []string {
	var cands []candidate
	for _, term := range v.Terms() {
		if strings.Contains(term, query) {
			cands = append(cands, candidate{
				term:   term,
				freq:   v.Frequency(term),
				prefix: strings.HasPrefix(term, query),
			})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].prefix != cands[j].prefix {
			return cands[i].prefix
		}
		if cands[i].freq != cands[j].freq {
			return cands[i].freq > cands[j].freq
		}
		return cands[i].term < cands[j].term
	})
	return take(cands, limit)
}

// fuzzyPass scores every term by averaging, over the query tokens, the
// best similarity against any term token. Whole-string similarity is the
// fallback when either side has no tokens.
func fuzzyPass(query string, v vocab.Vocabulary, limit int) []string {
	queryTokens := text.Tokenize(query)

	var cands []candidate
	for _, term := range v.Terms() {
		score := termScore(query, queryTokens, term)
		if score >= FuzzyThreshold {
			cands = append(cands, candidate{term: term, freq: v.Frequency(term), score: score})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		if cands[i].freq != cands[j].freq {
			return cands[i].freq > cands[j].freq
		}
		return cands[i].term < cands[j].term
	})
	return take(cands, limit)
}

// termScore rates one vocabulary term against the query.
func termScore(query string, queryTokens []string, term string) float64 {
	termTokens := text.Tokenize(term)
	if len(queryTokens) == 0 || len(termTokens) == 0 {
		return similarity.Score(query, term)
	}
	return similarity.TokenAverage(queryTokens, termTokens)
}

func take(cands []candidate, limit int) []string {
	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.term
	}
	return out
}
