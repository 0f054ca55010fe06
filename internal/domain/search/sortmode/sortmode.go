// Package sortmode enumerates result orderings.
package sortmode

// Mode selects the ordering of search results.
type Mode string

// Supported sort modes.
const (
	// Date orders by publication date, newest first. Records without a
	// parseable date sort last.
	Date Mode = "date"
	// Relevance orders by fuzzy score, then by exact-matched field count.
	Relevance Mode = "relevance"
	// Title orders by title, ascending lexicographic.
	Title Mode = "title"
	// Rating orders by average rating, ties broken by rating count.
	Rating Mode = "rating"
)

// IsValid reports whether m is a recognized mode.
func (m Mode) IsValid() bool {
	switch m {
	case Date, Relevance, Title, Rating:
		return true
	}
	return false
}

// String returns the wire form of the mode.
func (m Mode) String() string { return string(m) }

// Default is the mode used when the caller does not specify one.
const Default = Relevance
