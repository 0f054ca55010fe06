// Package rating joins the external ratings collection onto papers.
package rating

// Summary holds the derived rating metrics of one paper.
type Summary struct {
	average float64
	count   int
}

// NewSummary creates a summary from precomputed metrics.
func NewSummary(average float64, count int) Summary {
	return Summary{average: average, count: count}
}

// Average returns the mean rating, 0 when unrated.
func (s Summary) Average() float64 { return s.average }

// Count returns the number of ratings.
func (s Summary) Count() int { return s.count }

// Summaries maps paper id to its rating summary. Papers without ratings
// are simply absent; the zero Summary is returned for them.
type Summaries map[string]Summary

// Get returns the summary for a paper id (zero value when unrated).
func (s Summaries) Get(paperID string) Summary { return s[paperID] }

// Summarize averages raw rater->value maps per paper id.
func Summarize(raw map[string]map[string]float64) Summaries {
	out := make(Summaries, len(raw))
	for paperID, ratings := range raw {
		if len(ratings) == 0 {
			continue
		}
		var sum float64
		for _, v := range ratings {
			sum += v
		}
		out[paperID] = Summary{
			average: sum / float64(len(ratings)),
			count:   len(ratings),
		}
	}
	return out
}
