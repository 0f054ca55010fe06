// Package similarity scores approximate string matches for search ranking.
package similarity

import "strings"

// DefaultPrefixBonus is added when the candidate extends the query.
// Asymmetric on purpose: a corpus term that starts with the query is a
// better suggestion than a query that merely starts with the term, which
// only earns half the bonus.
const DefaultPrefixBonus = 0.08

// Score returns a normalized similarity in [0, 1] between a and b:
// 1 - editDistance/maxLen, plus the default prefix bonus, clamped.
// Both inputs are trimmed and lowercased first. Two empty strings are
// identical (score 1).
func Score(a, b string) float64 {
	return ScoreWithBonus(a, b, DefaultPrefixBonus)
}

// ScoreWithBonus is Score with a caller-supplied prefix bonus.
func ScoreWithBonus(a, b string, bonus float64) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" && b == "" {
		return 1
	}

	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		maxLen = 1
	}
	s := 1 - float64(distance(ra, rb))/float64(maxLen)

	if a != "" && b != "" {
		switch {
		case strings.HasPrefix(b, a):
			s += bonus
		case strings.HasPrefix(a, b):
			s += bonus / 2
		}
	}

	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// distance is the Damerau-Levenshtein edit distance with unit costs for
// insertion, deletion, substitution and adjacent transposition, using the
// alphabet-indexed recurrence (not the restricted OSA variant).
func distance(a, b []rune) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	inf := la + lb
	d := make([][]int, la+2)
	for i := range d {
		d[i] = make([]int, lb+2)
	}
	d[0][0] = inf
	for i := 0; i <= la; i++ {
		d[i+1][0] = inf
		d[i+1][1] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j+1] = inf
		d[1][j+1] = j
	}

	lastRow := make(map[rune]int, la)
	for i := 1; i <= la; i++ {
		lastMatchCol := 0
		for j := 1; j <= lb; j++ {
			i1 := lastRow[b[j-1]]
			j1 := lastMatchCol
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
				lastMatchCol = j
			}
			d[i+1][j+1] = min(
				d[i][j]+cost,        // substitution or match
				d[i+1][j]+1,         // insertion
				d[i][j+1]+1,         // deletion
				d[i1][j1]+(i-i1-1)+1+(j-j1-1), // transposition
			)
		}
		lastRow[a[i-1]] = i
	}
	return d[la+1][lb+1]
}

// Jaccard returns token-set overlap |a∩b| / |a∪b|. Two empty sets are
// considered identical.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	union := len(set)
	inter := 0
	seen := make(map[string]struct{}, len(b))
	for _, t := range b {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

// TokenAverage computes, for each query token, the best Score against any
// candidate token, and averages across query tokens. Returns 0 when either
// side has no tokens; callers fall back to whole-string Score in that case.
func TokenAverage(queryTokens, candidateTokens []string) float64 {
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0
	}
	var sum float64
	for _, q := range queryTokens {
		best := 0.0
		for _, c := range candidateTokens {
			if s := Score(q, c); s > best {
				best = s
			}
		}
		sum += best
	}
	return sum / float64(len(queryTokens))
}
