// Package rating reads the ratings collection from the document store.
package rating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/paperfind/paperfind/internal/db"
	domrating "github.com/paperfind/paperfind/internal/domain/rating"
)

// store is the consumer interface for ratings (ISP).
type store interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/search.RatingSource.
type Repo struct {
	store  store
	prefix string
}

// New creates a ratings repository over "<prefix>ratings:<paperID>" keys,
// each holding a rater-uid -> numeric-rating map.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Summaries reads and averages all ratings, keyed by paper id.
func (r *Repo) Summaries(ctx context.Context) (domrating.Summaries, error) {
	pattern := r.prefix + "ratings:*"
	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", pattern, err)
	}

	raw := make(map[string]map[string]float64, len(keys))
	for _, key := range keys {
		data, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("json.get %s: %w", key, err)
		}
		var docs []map[string]float64
		if err := json.Unmarshal(data, &docs); err != nil || len(docs) == 0 {
			continue
		}
		paperID := strings.TrimPrefix(key, r.prefix+"ratings:")
		raw[paperID] = docs[0]
	}
	return domrating.Summarize(raw), nil
}
