// Package paper defines the research-paper record the search core reads.
package paper

import (
	"strings"
	"time"
	"unicode"
)

// Access is the visibility level of a paper.
type Access string

// Access levels. Unknown covers any upload-type string that does not
// normalize to one of the recognized levels.
const (
	AccessPublic   Access = "public"
	AccessPrivate  Access = "private"
	AccessEyesOnly Access = "eyesOnly"
	AccessUnknown  Access = "unknown"
)

// NormalizeAccess maps loose upload-type strings ("Public", "eyes only",
// "EYES-ONLY", ...) onto the Access enum. Unmatched values become Unknown.
func NormalizeAccess(s string) Access {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	switch b.String() {
	case "public", "open", "openaccess":
		return AccessPublic
	case "private":
		return AccessPrivate
	case "eyesonly", "confidential":
		return AccessEyesOnly
	default:
		return AccessUnknown
	}
}

// IsValid reports whether a is a recognized access level.
func (a Access) IsValid() bool {
	switch a {
	case AccessPublic, AccessPrivate, AccessEyesOnly, AccessUnknown:
		return true
	}
	return false
}

// Paper is an immutable snapshot of one research-paper record.
// The search core never writes papers; they are reconstructed from the
// external store by the repository layer.
type Paper struct {
	id            string
	category      string
	title         string
	abstract      string
	keywords      []string
	tags          []string
	pubType       string
	scope         string
	researchField string
	status        string
	access        Access
	authorUIDs    []string
	authorNames   []string
	publishedAt   string
}

// Reconstruct builds a Paper from stored fields. The access string is
// normalized; everything else is taken as-is.
func Reconstruct(
	id, category, title, abstract string,
	keywords, tags []string,
	pubType, scope, researchField, status, access string,
	authorUIDs, authorNames []string,
	publishedAt string,
) Paper {
	return Paper{
		id:            id,
		category:      category,
		title:         title,
		abstract:      abstract,
		keywords:      keywords,
		tags:          tags,
		pubType:       pubType,
		scope:         scope,
		researchField: researchField,
		status:        status,
		access:        NormalizeAccess(access),
		authorUIDs:    authorUIDs,
		authorNames:   authorNames,
		publishedAt:   publishedAt,
	}
}

// ID returns the unique record id.
func (p Paper) ID() string { return p.id }

// Category returns the grouping category in the store tree.
func (p Paper) Category() string { return p.category }

// Title returns the paper title.
func (p Paper) Title() string { return p.title }

// Abstract returns the paper abstract.
func (p Paper) Abstract() string { return p.abstract }

// Keywords returns the free-text keyword collection.
func (p Paper) Keywords() []string { return p.keywords }

// Tags returns the free-text tag collection.
func (p Paper) Tags() []string { return p.tags }

// PubType returns the publication type.
func (p Paper) PubType() string { return p.pubType }

// Scope returns the scope field.
func (p Paper) Scope() string { return p.scope }

// ResearchField returns the research field / conference field.
func (p Paper) ResearchField() string { return p.researchField }

// Status returns the workflow status (e.g. "saved", "published").
func (p Paper) Status() string { return p.status }

// Access returns the normalized access level.
func (p Paper) Access() Access { return p.access }

// AuthorUIDs returns the author user-id references.
func (p Paper) AuthorUIDs() []string { return p.authorUIDs }

// AuthorNames returns free-text author names not backed by a UID.
func (p Paper) AuthorNames() []string { return p.authorNames }

// PublishedAt returns the raw publication date string.
func (p Paper) PublishedAt() string { return p.publishedAt }

// dateLayouts are tried in order when parsing publication dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// PublishedTime parses the publication date leniently. An empty or
// unparseable date yields the zero time, which sorts after every valid
// date under descending date order.
func (p Paper) PublishedTime() time.Time {
	s := strings.TrimSpace(p.publishedAt)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Year returns the publication year, or 0 when the date is unparseable.
func (p Paper) Year() int {
	t := p.PublishedTime()
	if t.IsZero() {
		return 0
	}
	return t.Year()
}
