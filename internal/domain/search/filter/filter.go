// Package filter holds the structured search filter and its predicates.
package filter

import (
	"fmt"
	"strings"

	"github.com/paperfind/paperfind/internal/domain/paper"
	"github.com/paperfind/paperfind/internal/domain/profile"
	"github.com/paperfind/paperfind/internal/domain/rating"
)

// Params are the raw filter inputs as received from the caller.
// Zero values mean "not filtered on".
type Params struct {
	Year          int
	Type          string
	Status        string
	Access        string
	MinRating     float64
	Author        string // UID reference or free-form name
	ResearchField string
	Scope         string
}

// Filter is a validated set of search predicates.
type Filter struct {
	year          int
	pubType       string
	status        string
	access        paper.Access
	hasAccess     bool
	minRating     float64
	author        string
	authorKey     string
	researchField string
	scope         string
}

// New validates and creates a Filter from params.
func New(p Params) (Filter, error) {
	if p.Year < 0 {
		return Filter{}, fmt.Errorf("year must not be negative, got %d", p.Year)
	}
	if p.MinRating < 0 || p.MinRating > 5 {
		return Filter{}, fmt.Errorf("rating must be between 0 and 5, got %g", p.MinRating)
	}
	f := Filter{
		year:          p.Year,
		pubType:       strings.TrimSpace(p.Type),
		status:        strings.ToLower(strings.TrimSpace(p.Status)),
		minRating:     p.MinRating,
		author:        strings.TrimSpace(p.Author),
		researchField: strings.TrimSpace(p.ResearchField),
		scope:         strings.TrimSpace(p.Scope),
	}
	if a := strings.TrimSpace(p.Access); a != "" {
		acc := paper.NormalizeAccess(a)
		if acc == paper.AccessUnknown {
			return Filter{}, fmt.Errorf("access must be public, private or eyesOnly, got %q", p.Access)
		}
		f.access = acc
		f.hasAccess = true
	}
	f.authorKey = profile.NameKey(f.author)
	return f, nil
}

// None is the empty filter; every paper passes it.
var None = Filter{}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool { return f == None }

// Matches reports whether a paper passes every active predicate.
// The directory is needed to resolve author UIDs for the author predicate.
func (f Filter) Matches(p paper.Paper, sum rating.Summary, dir profile.Directory) bool {
	if f.year != 0 && p.Year() != f.year {
		return false
	}
	if f.pubType != "" && p.PubType() != f.pubType {
		return false
	}
	if f.status != "" && strings.ToLower(p.Status()) != f.status {
		return false
	}
	if f.hasAccess && p.Access() != f.access {
		return false
	}
	if f.minRating > 0 && sum.Average() < f.minRating {
		return false
	}
	if f.researchField != "" && !strings.EqualFold(p.ResearchField(), f.researchField) {
		return false
	}
	if f.scope != "" && !strings.EqualFold(p.Scope(), f.scope) {
		return false
	}
	if f.author != "" && !f.matchesAuthor(p, dir) {
		return false
	}
	return true
}

// matchesAuthor accepts either a UID reference or a canonicalized name
// match against any resolved author name.
func (f Filter) matchesAuthor(p paper.Paper, dir profile.Directory) bool {
	for _, uid := range p.AuthorUIDs() {
		if uid == f.author {
			return true
		}
		if f.authorKey != "" && profile.NameKey(dir.DisplayName(uid)) == f.authorKey {
			return true
		}
	}
	if f.authorKey == "" {
		return false
	}
	for _, name := range p.AuthorNames() {
		if profile.NameKey(name) == f.authorKey {
			return true
		}
	}
	return false
}
