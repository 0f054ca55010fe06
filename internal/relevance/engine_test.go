package relevance

import (
	"testing"

	"github.com/paperfind/paperfind/internal/domain/corpus"
	"github.com/paperfind/paperfind/internal/domain/paper"
	"github.com/paperfind/paperfind/internal/domain/profile"
	"github.com/paperfind/paperfind/internal/domain/rating"
	"github.com/paperfind/paperfind/internal/domain/search/filter"
	"github.com/paperfind/paperfind/internal/domain/search/result"
	"github.com/paperfind/paperfind/internal/domain/search/sortmode"
)

func mkPaper(id, title, abstract, access, date string) paper.Paper {
	return paper.Reconstruct(
		id, "general", title, abstract,
		nil, nil, "Review", "National", "Medicine", "published", access,
		nil, nil, date,
	)
}

func twoPaperSnap() corpus.Snapshot {
	return corpus.Snapshot{
		Papers: []paper.Paper{
			mkPaper("a", "Diabetes Management Guidelines", "Glucose control.", "public", "2020-01-01"),
			mkPaper("b", "Cardiac Arrest Protocols", "Resuscitation steps.", "public", "2021-01-01"),
		},
	}
}

func ids(hits []result.ScoredPaper) []string {
	out := make([]string, len(hits))
	for i := range hits {
		out[i] = hits[i].Paper().ID()
	}
	return out
}

func TestSearch_BlankQueryPassthrough(t *testing.T) {
	e := New(DefaultWeights())
	hits := e.Search("", twoPaperSnap(), filter.None, sortmode.Date)
	if len(hits) != 2 {
		t.Fatalf("blank query returned %d hits, want 2", len(hits))
	}
	// Date descending: b (2021) before a (2020).
	if got := ids(hits); got[0] != "b" || got[1] != "a" {
		t.Errorf("order = %v, want [b a]", got)
	}
	for _, h := range hits {
		if h.Score() != 0 {
			t.Error("blank query must skip fuzzy scoring")
		}
	}
}

func TestSearch_ExactSubstringAlwaysIncluded(t *testing.T) {
	e := New(DefaultWeights())
	hits := e.Search("cardiac arrest", twoPaperSnap(), filter.None, sortmode.Relevance)
	found := false
	for _, h := range hits {
		if h.Paper().ID() == "b" {
			found = true
			if h.MatchedFields()["title"] == "" {
				t.Error("matched fields missing title containment")
			}
		}
	}
	if !found {
		t.Fatal("exact title substring must guarantee inclusion")
	}
}

func TestSearch_MisspelledQueryRanksFuzzyMatchFirst(t *testing.T) {
	e := New(DefaultWeights())
	hits := e.Search("diabetis", twoPaperSnap(), filter.None, sortmode.Relevance)
	if len(hits) == 0 {
		t.Fatal("misspelled query matched nothing")
	}
	if hits[0].Paper().ID() != "a" {
		t.Errorf("top hit = %s, want the diabetes paper", hits[0].Paper().ID())
	}
	for _, h := range hits {
		if h.Paper().ID() == "b" {
			t.Error("unrelated paper cleared the include threshold")
		}
	}
}

func TestSearch_AccessFilterBeatsScore(t *testing.T) {
	snap := corpus.Snapshot{
		Papers: []paper.Paper{
			mkPaper("pub", "Sepsis Bundle Adherence", "", "public", "2020-01-01"),
			mkPaper("priv", "Sepsis Bundle Adherence Extended", "", "private", "2020-01-01"),
		},
	}
	f, err := filter.New(filter.Params{Access: "public"})
	if err != nil {
		t.Fatal(err)
	}
	e := New(DefaultWeights())
	hits := e.Search("sepsis bundle", snap, f, sortmode.Relevance)
	for _, h := range hits {
		if h.Paper().Access() != paper.AccessPublic {
			t.Errorf("private paper %s leaked through access filter", h.Paper().ID())
		}
	}
	if len(hits) != 1 {
		t.Errorf("got %d hits, want 1", len(hits))
	}
}

func TestSearch_AuthorContainment(t *testing.T) {
	p := paper.Reconstruct(
		"a1", "general", "Ward Rounds", "", nil, nil,
		"", "", "", "", "public", []string{"u1"}, nil, "",
	)
	snap := corpus.Snapshot{
		Papers:    []paper.Paper{p},
		Directory: profile.Directory{"u1": profile.New("Carlos", "", "Munoz", "", "resident")},
	}
	e := New(DefaultWeights())
	for _, q := range []string{"carlos munoz", "munoz, carlos"} {
		hits := e.Search(q, snap, filter.None, sortmode.Relevance)
		if len(hits) != 1 {
			t.Errorf("query %q: got %d hits, want 1", q, len(hits))
		}
	}
}

func TestSearch_DateSortUnparseableLast(t *testing.T) {
	snap := corpus.Snapshot{
		Papers: []paper.Paper{
			mkPaper("broken", "B", "", "public", "not a date"),
			mkPaper("old", "O", "", "public", "1999-01-01"),
			mkPaper("new", "N", "", "public", "2024-01-01"),
		},
	}
	e := New(DefaultWeights())
	hits := e.Search("", snap, filter.None, sortmode.Date)
	if got := ids(hits); got[0] != "new" || got[1] != "old" || got[2] != "broken" {
		t.Errorf("date order = %v, want [new old broken]", got)
	}
}

func TestSearch_RatingSortTieBreak(t *testing.T) {
	snap := twoPaperSnap()
	snap.Ratings = rating.Summaries{
		"a": rating.NewSummary(4.0, 2),
		"b": rating.NewSummary(4.0, 9),
	}
	e := New(DefaultWeights())
	hits := e.Search("", snap, filter.None, sortmode.Rating)
	if got := ids(hits); got[0] != "b" {
		t.Errorf("rating order = %v: equal averages must break on count desc", got)
	}
}

func TestSearch_TitleSort(t *testing.T) {
	e := New(DefaultWeights())
	hits := e.Search("", twoPaperSnap(), filter.None, sortmode.Title)
	if got := ids(hits); got[0] != "b" {
		// "Cardiac..." < "Diabetes..."
		t.Errorf("title order = %v, want [b a]", got)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	e := New(DefaultWeights())
	snap := twoPaperSnap()
	first := ids(e.Search("protocol", snap, filter.None, sortmode.Relevance))
	for i := 0; i < 10; i++ {
		got := ids(e.Search("protocol", snap, filter.None, sortmode.Relevance))
		if len(got) != len(first) {
			t.Fatalf("run %d: length changed", i)
		}
		for j := range got {
			if got[j] != first[j] {
				t.Fatalf("run %d: order changed: %v vs %v", i, got, first)
			}
		}
	}
}

func TestSearch_MinRatingFilter(t *testing.T) {
	snap := twoPaperSnap()
	snap.Ratings = rating.Summaries{"a": rating.NewSummary(4.5, 3)}
	f, err := filter.New(filter.Params{MinRating: 4})
	if err != nil {
		t.Fatal(err)
	}
	e := New(DefaultWeights())
	hits := e.Search("", snap, f, sortmode.Date)
	if len(hits) != 1 || hits[0].Paper().ID() != "a" {
		t.Errorf("min-rating filter hits = %v, want [a]", ids(hits))
	}
}
