package vocab

import (
	"testing"

	"github.com/paperfind/paperfind/internal/domain/corpus"
	"github.com/paperfind/paperfind/internal/domain/paper"
	"github.com/paperfind/paperfind/internal/domain/profile"
)

func snap() corpus.Snapshot {
	return corpus.Snapshot{
		Papers: []paper.Paper{
			paper.Reconstruct(
				"p1", "endo", "Diabetes Management Guidelines", "Managing diabetes daily.",
				[]string{"diabetes", "insulin"}, []string{"guideline"},
				"Review", "National", "Endocrinology", "published", "public",
				[]string{"u1"}, []string{"Doe, Jane"},
				"2022-01-01",
			),
		},
		Directory: profile.Directory{"u1": profile.New("Carlos", "", "Munoz", "", "resident")},
	}
}

func TestBuild(t *testing.T) {
	v := Build(snap())

	if got := v.Frequency("diabetes"); got != 3 {
		t.Errorf("Frequency(diabetes) = %d, want 3 (title + abstract + keyword)", got)
	}
	if v.Frequency("carlos") != 1 || v.Frequency("munoz") != 1 {
		t.Error("resolved author name words missing")
	}
	if v.Frequency("carlos munoz") != 1 {
		t.Error("composed author name should be a single phrase entry")
	}
	if v.Frequency("doe, jane") != 1 {
		t.Error("free-text author phrase missing")
	}
}

func TestBuild_TermLengthInvariant(t *testing.T) {
	v := Build(snap())
	for _, term := range v.Terms() {
		if len(term) < 2 {
			t.Errorf("term %q shorter than 2 characters", term)
		}
	}
}

func TestMerge_Additive(t *testing.T) {
	a := Build(snap())
	before := a.Frequency("diabetes")

	a = Merge(a, Build(snap()))
	if got := a.Frequency("diabetes"); got != before*2 {
		t.Errorf("Frequency after merge = %d, want %d", got, before*2)
	}

	// Merging into a zero vocabulary allocates.
	z := Merge(Vocabulary{}, Build(snap()))
	if z.Frequency("diabetes") != before {
		t.Error("merge into zero vocabulary lost terms")
	}
}

func TestMerge_DeltaUntouched(t *testing.T) {
	delta := Build(snap())
	want := delta.Frequency("insulin")
	_ = Merge(Build(snap()), delta)
	if delta.Frequency("insulin") != want {
		t.Error("Merge mutated its delta argument")
	}
}
