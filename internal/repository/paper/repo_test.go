package paper

import (
	"context"
	"testing"

	"github.com/paperfind/paperfind/internal/db"
)

type fakeStore struct {
	keys map[string][]byte
}

func (f *fakeStore) JSONGet(_ context.Context, key string, _ ...string) ([]byte, error) {
	if raw, ok := f.keys[key]; ok {
		return raw, nil
	}
	return nil, db.ErrKeyNotFound
}

func (f *fakeStore) Scan(_ context.Context, _ string) ([]string, error) {
	out := make([]string, 0, len(f.keys))
	for k := range f.keys {
		out = append(out, k)
	}
	return out, nil
}

func (f *fakeStore) Subscribe(ctx context.Context, _ string, _ func(string)) error {
	<-ctx.Done()
	return nil
}

func TestSnapshot(t *testing.T) {
	fs := &fakeStore{keys: map[string][]byte{
		"pf:papers:cardio:p2": []byte(`[{"title":"Cardiac Arrest Protocols","uploadType":"public","publicationDate":"2021-03-01"}]`),
		"pf:papers:endo:p1":   []byte(`[{"id":"p1","title":"Diabetes Management","keywords":["diabetes"],"uploadType":"Eyes Only"}]`),
		"pf:papers:endo:bad":  []byte(`not json`),
	}}
	r := New(fs, "pf:")

	papers, err := r.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2 (undecodable skipped)", len(papers))
	}
	// Ordered by id: p1 then p2.
	if papers[0].ID() != "p1" || papers[1].ID() != "p2" {
		t.Errorf("order = [%s %s]", papers[0].ID(), papers[1].ID())
	}
	if papers[0].Access() != "eyesOnly" {
		t.Errorf("access = %q, want eyesOnly", papers[0].Access())
	}
	// Id and category recovered from the key when the document omits them.
	if papers[1].ID() != "p2" || papers[1].Category() != "cardio" {
		t.Errorf("key-derived fields = %s/%s", papers[1].ID(), papers[1].Category())
	}
}

func TestSplitKey(t *testing.T) {
	id, cat := splitKey("pf:", "pf:papers:endo:p1")
	if id != "p1" || cat != "endo" {
		t.Errorf("splitKey = %s/%s", id, cat)
	}
}
