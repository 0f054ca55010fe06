// Package corpus bundles the joined snapshot the search core reads.
package corpus

import (
	"github.com/paperfind/paperfind/internal/domain/paper"
	"github.com/paperfind/paperfind/internal/domain/profile"
	"github.com/paperfind/paperfind/internal/domain/rating"
)

// Snapshot is one consistent read of papers, the user directory, and the
// ratings collection. All scoring functions treat it as immutable.
type Snapshot struct {
	Papers    []paper.Paper
	Directory profile.Directory
	Ratings   rating.Summaries
}

// AuthorNames resolves every author of p to a display name: UID references
// go through the directory (falling back to the raw UID), free-text author
// names are passed through.
func (s Snapshot) AuthorNames(p paper.Paper) []string {
	names := make([]string, 0, len(p.AuthorUIDs())+len(p.AuthorNames()))
	for _, uid := range p.AuthorUIDs() {
		names = append(names, s.Directory.DisplayName(uid))
	}
	names = append(names, p.AuthorNames()...)
	return names
}
