// Package snippet extracts "related phrases" from top-ranked papers.
package snippet

import (
	"sort"
	"strings"

	"github.com/paperfind/paperfind/internal/domain/paper"
	"github.com/paperfind/paperfind/internal/similarity"
	"github.com/paperfind/paperfind/internal/text"
)

// Extraction parameters.
const (
	// MaxSourcePapers caps how many top-ranked papers contribute snippets.
	MaxSourcePapers = 60
	// MinSnippetLength drops fragments too short to display.
	MinSnippetLength = 12
	// minWindowTokens is the sentence size at which n-gram windows kick in.
	minWindowTokens = 6
	// maxWindowTokens bounds the sliding window length.
	maxWindowTokens = 10
	// DedupOverlap is the token-Jaccard above which two snippets are
	// considered near-duplicates.
	DedupOverlap = 0.8
	// DefaultK is the default number of phrases returned.
	DefaultK = 6
)

// Weights blend the three phrase-score components. Inherited defaults,
// exposed for tuning.
type Weights struct {
	Jaccard   float64 `yaml:"jaccard"`
	TokenMean float64 `yaml:"token_mean"`
	Whole     float64 `yaml:"whole"`
	// Threshold is the minimum phrase score for a snippet to be kept.
	Threshold float64 `yaml:"threshold"`
}

// DefaultWeights returns the stock phrase-scoring parameters.
func DefaultWeights() Weights {
	return Weights{Jaccard: 0.45, TokenMean: 0.35, Whole: 0.20, Threshold: 0.42}
}

// RelatedPhrases collects candidate snippets from the top papers (titles,
// abstract sentences, token windows of long sentences, keyword and tag
// values), scores them against the query, and returns up to k accepted
// phrases with near-duplicates suppressed.
func RelatedPhrases(query string, topPapers []paper.Paper, k int, w Weights) []string {
	query = strings.TrimSpace(query)
	if query == "" || len(topPapers) == 0 {
		return nil
	}
	if k <= 0 {
		k = DefaultK
	}
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	if len(topPapers) > MaxSourcePapers {
		topPapers = topPapers[:MaxSourcePapers]
	}

	queryTokens := text.Tokenize(query)

	type scored struct {
		phrase string
		tokens []string
		score  float64
	}
	var cands []scored
	seen := make(map[string]struct{})
	consider := func(phrase string) {
		phrase = strings.TrimSpace(phrase)
		if len(phrase) < MinSnippetLength {
			return
		}
		key := strings.ToLower(phrase)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		tokens := text.Tokenize(phrase)
		score := w.Jaccard*similarity.Jaccard(queryTokens, tokens) +
			w.TokenMean*similarity.TokenAverage(queryTokens, tokens) +
			w.Whole*similarity.Score(query, phrase)
		if score >= w.Threshold {
			cands = append(cands, scored{phrase: phrase, tokens: tokens, score: score})
		}
	}

	for _, p := range topPapers {
		consider(p.Title())
		for _, sentence := range text.Sentences(p.Abstract()) {
			consider(sentence)
			for _, window := range tokenWindows(sentence) {
				consider(window)
			}
		}
		for _, kw := range p.Keywords() {
			consider(kw)
		}
		for _, tag := range p.Tags() {
			consider(tag)
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].phrase < cands[j].phrase
	})

	// Greedy near-duplicate suppression.
	var out []string
	var kept [][]string
	for _, c := range cands {
		if len(out) == k {
			break
		}
		dup := false
		for _, prev := range kept {
			if similarity.Jaccard(c.tokens, prev) > DedupOverlap {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		out = append(out, c.phrase)
		kept = append(kept, c.tokens)
	}
	return out
}

// tokenWindows returns the contiguous word windows of length 6..10 of a
// sentence with at least 6 tokens. Windows are cut from the original
// words, not the normalized tokens, so they read naturally.
func tokenWindows(sentence string) []string {
	words := strings.Fields(sentence)
	if len(text.Tokenize(sentence)) < minWindowTokens {
		return nil
	}
	var windows []string
	for size := minWindowTokens; size <= maxWindowTokens; size++ {
		if size > len(words) {
			break
		}
		for start := 0; start+size <= len(words); start++ {
			windows = append(windows, strings.Join(words[start:start+size], " "))
		}
	}
	return windows
}
