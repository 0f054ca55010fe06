// Package paper reads the research-paper tree from the document store.
package paper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/paperfind/paperfind/internal/db"
	domp "github.com/paperfind/paperfind/internal/domain/paper"
)

// store is the consumer interface for paper records (ISP).
type store interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Subscribe(ctx context.Context, channel string, fn func(message string)) error
}

// Repo implements usecase/search.PaperSource.
type Repo struct {
	store  store
	prefix string
}

// New creates a paper repository. Keys follow
// "<prefix>papers:<category>:<id>"; changes are published on
// "<prefix>changes:papers".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Snapshot reads every paper record, ordered by record id for stable
// downstream enumeration. Records that fail to decode are skipped.
func (r *Repo) Snapshot(ctx context.Context) ([]domp.Paper, error) {
	pattern := r.prefix + "papers:*"
	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", pattern, err)
	}
	sort.Strings(keys)

	papers := make([]domp.Paper, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue // deleted between scan and read
			}
			return nil, fmt.Errorf("json.get %s: %w", key, err)
		}
		p, err := decode(raw, r.prefix, key)
		if err != nil {
			continue
		}
		papers = append(papers, p)
	}

	sort.Slice(papers, func(i, j int) bool { return papers[i].ID() < papers[j].ID() })
	return papers, nil
}

// Watch invokes fn on every change notification until ctx is canceled.
func (r *Repo) Watch(ctx context.Context, fn func()) error {
	return r.store.Subscribe(ctx, r.prefix+"changes:papers", func(string) { fn() })
}

// decode unmarshals a JSON.GET result. The "$" path yields a one-element
// array wrapping the document.
func decode(raw []byte, prefix, key string) (domp.Paper, error) {
	var docs []dto
	if err := json.Unmarshal(raw, &docs); err != nil {
		var single dto
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return domp.Paper{}, fmt.Errorf("decode %s: %w", key, err)
		}
		docs = []dto{single}
	}
	if len(docs) == 0 {
		return domp.Paper{}, fmt.Errorf("decode %s: empty document", key)
	}

	id, category := splitKey(prefix, key)
	return docs[0].toDomain(id, category), nil
}

// splitKey recovers category and id from "<prefix>papers:<category>:<id>".
func splitKey(prefix, key string) (id, category string) {
	rest := strings.TrimPrefix(key, prefix+"papers:")
	if i := strings.LastIndex(rest, ":"); i >= 0 {
		return rest[i+1:], rest[:i]
	}
	return rest, ""
}
