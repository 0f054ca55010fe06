// Package vocab accumulates the term-frequency table used by suggestions
// and autocorrect.
package vocab

import (
	"sort"
	"strings"

	"github.com/paperfind/paperfind/internal/domain/corpus"
	"github.com/paperfind/paperfind/internal/text"
)

// Vocabulary maps a term to its occurrence count across the corpus.
// Terms are lowercased, trimmed, and always at least 2 characters long.
// Frequencies only ever grow: snapshots are merged additively and never
// decremented within a session.
type Vocabulary struct {
	freq map[string]int
}

// New creates an empty vocabulary.
func New() Vocabulary {
	return Vocabulary{freq: make(map[string]int)}
}

// Frequency returns the occurrence count of a term (0 when absent).
func (v Vocabulary) Frequency(term string) int { return v.freq[term] }

// Len returns the number of distinct terms.
func (v Vocabulary) Len() int { return len(v.freq) }

// Terms returns all terms in ascending lexicographic order.
func (v Vocabulary) Terms() []string {
	terms := make([]string, 0, len(v.freq))
	for t := range v.freq {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// add bumps a term by n, enforcing the length >= 2 invariant.
func (v Vocabulary) add(term string, n int) {
	term = strings.ToLower(strings.TrimSpace(term))
	if len(term) < 2 {
		return
	}
	v.freq[term] += n
}

// addWords bumps every whitespace-separated word of s by 1.
func (v Vocabulary) addWords(s string) {
	for _, w := range text.Words(s) {
		v.add(w, 1)
	}
}

// addPhrase bumps the individual words of s and, when s is multi-word,
// the whole phrase as a single entry. Used for composed author names so
// that both "jane" and "jane doe" are suggestible.
func (v Vocabulary) addPhrase(s string) {
	v.addWords(s)
	phrase := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	if strings.Contains(phrase, " ") {
		v.add(phrase, 1)
	}
}

// Merge adds every frequency of delta into v and returns v. Purely
// additive; delta is not mutated.
func Merge(v, delta Vocabulary) Vocabulary {
	if v.freq == nil {
		v = New()
	}
	for term, n := range delta.freq {
		v.freq[term] += n
	}
	return v
}

// Build scans a corpus snapshot into a fresh vocabulary: every searchable
// text field of every paper, plus every resolved author display name.
// The snapshot is not mutated.
func Build(snap corpus.Snapshot) Vocabulary {
	v := New()
	for _, p := range snap.Papers {
		v.addWords(p.Title())
		v.addWords(p.Abstract())
		for _, kw := range p.Keywords() {
			v.addWords(kw)
		}
		for _, tag := range p.Tags() {
			v.addWords(tag)
		}
		v.addWords(p.PubType())
		v.addWords(p.Scope())
		v.addWords(p.ResearchField())
		for _, name := range snap.AuthorNames(p) {
			v.addPhrase(name)
		}
	}
	return v
}
