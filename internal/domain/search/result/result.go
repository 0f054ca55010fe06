// Package result holds scored search hits.
package result

import (
	"github.com/paperfind/paperfind/internal/domain/paper"
	"github.com/paperfind/paperfind/internal/domain/rating"
)

// ScoredPaper is one ranked search hit: the paper, its relevance score,
// the fields that contained the query (for highlighting), and its joined
// rating summary.
type ScoredPaper struct {
	paper   paper.Paper
	score   float64
	matched map[string]string
	rating  rating.Summary
}

// New creates a scored hit.
func New(p paper.Paper, score float64, matched map[string]string, r rating.Summary) ScoredPaper {
	return ScoredPaper{paper: p, score: score, matched: matched, rating: r}
}

// Paper returns the underlying record.
func (s *ScoredPaper) Paper() paper.Paper { return s.paper }

// Score returns the relevance score in [0, 1].
func (s *ScoredPaper) Score() float64 { return s.score }

// MatchedFields maps field name to the field value that contained the
// query substring. Empty for fuzzy-only matches.
func (s *ScoredPaper) MatchedFields() map[string]string { return s.matched }

// Rating returns the joined rating summary.
func (s *ScoredPaper) Rating() rating.Summary { return s.rating }
