// Package relevance scores and orders papers against free-text queries.
package relevance

import (
	"sort"
	"strings"

	"github.com/paperfind/paperfind/internal/domain/corpus"
	"github.com/paperfind/paperfind/internal/domain/paper"
	"github.com/paperfind/paperfind/internal/domain/search/filter"
	"github.com/paperfind/paperfind/internal/domain/search/result"
	"github.com/paperfind/paperfind/internal/domain/search/sortmode"
	"github.com/paperfind/paperfind/internal/similarity"
	"github.com/paperfind/paperfind/internal/text"
)

// Weights are the tunable scoring parameters. The defaults are inherited
// behavior, not derived values; treat them as configuration.
type Weights struct {
	// FuzzyWeight and CoverageWeight blend the best-field similarity with
	// multi-token coverage for queries of more than one token.
	FuzzyWeight    float64 `yaml:"fuzzy_weight"`
	CoverageWeight float64 `yaml:"coverage_weight"`
	// TokenThreshold is the per-token similarity a query token must reach
	// somewhere in the record to count as covered.
	TokenThreshold float64 `yaml:"token_threshold"`
	// IncludeThreshold is the minimum fuzzy score for a record with no
	// exact or author match to be included.
	IncludeThreshold float64 `yaml:"include_threshold"`
}

// DefaultWeights returns the stock scoring parameters.
func DefaultWeights() Weights {
	return Weights{
		FuzzyWeight:      0.7,
		CoverageWeight:   0.3,
		TokenThreshold:   0.68,
		IncludeThreshold: 0.72,
	}
}

// Engine ranks corpus snapshots. Stateless and safe for concurrent use.
type Engine struct {
	weights Weights
}

// New creates an engine. Zero weights fall back to the defaults.
func New(w Weights) *Engine {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return &Engine{weights: w}
}

// Search scores every paper in the snapshot against the query, applies
// the filter, and orders the hits under the given sort mode. A blank
// query includes every filtered paper with fuzzy scoring skipped
// entirely. For a fixed snapshot and inputs the output ordering is
// byte-identical across runs: every sort mode ends in a record-id
// tie-break.
func (e *Engine) Search(
	query string, snap corpus.Snapshot, f filter.Filter, mode sortmode.Mode,
) []result.ScoredPaper {
	query = strings.TrimSpace(query)
	if !mode.IsValid() {
		mode = sortmode.Default
	}

	var hits []result.ScoredPaper
	for _, p := range snap.Papers {
		sum := snap.Ratings.Get(p.ID())
		if !f.Matches(p, sum, snap.Directory) {
			continue
		}
		if query == "" {
			hits = append(hits, result.New(p, 0, nil, sum))
			continue
		}

		matched := matchedFields(p, snap, query)
		authorHit := authorContains(p, snap, query)
		score := e.fuzzyScore(query, p, snap)

		if len(matched) == 0 && !authorHit && score < e.weights.IncludeThreshold {
			continue
		}
		hits = append(hits, result.New(p, score, matched, sum))
	}

	e.order(hits, mode)
	return hits
}

// fieldValues builds the typed field tree scored for one paper.
func fieldValues(p paper.Paper, snap corpus.Snapshot) text.Map {
	return text.Map{
		"title":         text.Str(p.Title()),
		"abstract":      text.Str(p.Abstract()),
		"keywords":      text.StrList(p.Keywords()),
		"tags":          text.StrList(p.Tags()),
		"type":          text.Str(p.PubType()),
		"scope":         text.Str(p.Scope()),
		"researchField": text.Str(p.ResearchField()),
		"authors":       text.StrList(snap.AuthorNames(p)),
	}
}

// matchedFields maps each field whose tree contains the query substring
// (case-insensitive) to the matching leaf value.
func matchedFields(p paper.Paper, snap corpus.Snapshot, query string) map[string]string {
	var matched map[string]string
	for name, v := range fieldValues(p, snap) {
		if leaf, ok := text.FirstContaining(v, query); ok {
			if matched == nil {
				matched = make(map[string]string)
			}
			matched[name] = leaf
		}
	}
	return matched
}

// authorContains checks the query against both orderings of every
// author display name, so "munoz carlos" finds "Carlos Munoz" and
// "Munoz, Carlos" alike.
func authorContains(p paper.Paper, snap corpus.Snapshot, query string) bool {
	q := strings.ToLower(query)
	for _, name := range snap.AuthorNames(p) {
		for _, form := range nameForms(name) {
			if strings.Contains(form, q) {
				return true
			}
		}
	}
	return false
}

// nameForms returns lowercased "first last" and "last, first" renderings.
func nameForms(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	forms := []string{name}
	if before, after, ok := strings.Cut(name, ","); ok {
		forms = append(forms, strings.TrimSpace(after)+" "+strings.TrimSpace(before))
	} else if fields := strings.Fields(name); len(fields) > 1 {
		last := fields[len(fields)-1]
		forms = append(forms, last+", "+strings.Join(fields[:len(fields)-1], " "))
	}
	return forms
}

// fuzzyScore computes the record score: the best per-field similarity
// (containment short-circuits to 1), blended with multi-token coverage
// when the query has more than one token.
func (e *Engine) fuzzyScore(query string, p paper.Paper, snap corpus.Snapshot) float64 {
	values := text.Strings(fieldValues(p, snap))
	best := bestSimilarityAgainst(query, values)

	queryTokens := text.Tokenize(query)
	if len(queryTokens) <= 1 {
		return best
	}

	covered := 0
	for _, qt := range queryTokens {
		if bestSimilarityAgainst(qt, values) >= e.weights.TokenThreshold {
			covered++
		}
	}
	coverage := float64(covered) / float64(len(queryTokens))
	return best*e.weights.FuzzyWeight + coverage*e.weights.CoverageWeight
}

// bestSimilarityAgainst takes the maximum similarity of the query against
// any candidate string: containment scores 1 immediately, otherwise the
// token-wise best-match average, otherwise whole-string similarity.
func bestSimilarityAgainst(query string, values []string) float64 {
	q := strings.ToLower(query)
	queryTokens := text.Tokenize(query)

	best := 0.0
	for _, v := range values {
		if v == "" {
			continue
		}
		if strings.Contains(strings.ToLower(v), q) {
			return 1
		}
		valueTokens := text.Tokenize(v)
		var s float64
		if len(queryTokens) > 0 && len(valueTokens) > 0 {
			s = similarity.TokenAverage(queryTokens, valueTokens)
		} else {
			s = similarity.Score(query, v)
		}
		if s > best {
			best = s
		}
	}
	return best
}

// order sorts hits in place under the sort mode. Every mode bottoms out
// in ascending record id so ties never depend on input enumeration.
func (e *Engine) order(hits []result.ScoredPaper, mode sortmode.Mode) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := &hits[i], &hits[j]
		switch mode {
		case sortmode.Date:
			at, bt := a.Paper().PublishedTime(), b.Paper().PublishedTime()
			if !at.Equal(bt) {
				return at.After(bt)
			}
		case sortmode.Title:
			if a.Paper().Title() != b.Paper().Title() {
				return a.Paper().Title() < b.Paper().Title()
			}
		case sortmode.Rating:
			if a.Rating().Average() != b.Rating().Average() {
				return a.Rating().Average() > b.Rating().Average()
			}
			if a.Rating().Count() != b.Rating().Count() {
				return a.Rating().Count() > b.Rating().Count()
			}
		case sortmode.Relevance:
			if a.Score() != b.Score() {
				return a.Score() > b.Score()
			}
			if len(a.MatchedFields()) != len(b.MatchedFields()) {
				return len(a.MatchedFields()) > len(b.MatchedFields())
			}
		}
		return a.Paper().ID() < b.Paper().ID()
	})
}
