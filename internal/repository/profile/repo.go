// Package profile reads the user directory from the document store.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/paperfind/paperfind/internal/db"
	domprofile "github.com/paperfind/paperfind/internal/domain/profile"
)

// store is the consumer interface for user profiles (ISP).
type store interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// dto mirrors the stored JSON shape of a user profile.
type dto struct {
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName"`
	Suffix     string `json:"suffix,omitempty"`
	Role       string `json:"role,omitempty"`
}

// Repo implements usecase/search.ProfileSource.
type Repo struct {
	store  store
	prefix string
}

// New creates a profile repository over "<prefix>users:<uid>" keys.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Directory reads every user profile keyed by uid. Undecodable entries
// are skipped; author resolution falls back to the raw uid for them.
func (r *Repo) Directory(ctx context.Context) (domprofile.Directory, error) {
	pattern := r.prefix + "users:*"
	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", pattern, err)
	}

	dir := make(domprofile.Directory, len(keys))
	for _, key := range keys {
		raw, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("json.get %s: %w", key, err)
		}
		var docs []dto
		if err := json.Unmarshal(raw, &docs); err != nil || len(docs) == 0 {
			continue
		}
		d := docs[0]
		uid := strings.TrimPrefix(key, r.prefix+"users:")
		dir[uid] = domprofile.New(d.FirstName, d.MiddleName, d.LastName, d.Suffix, d.Role)
	}
	return dir, nil
}
