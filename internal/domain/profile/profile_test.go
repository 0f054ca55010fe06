package profile

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		p    Profile
		want string
	}{
		{"full", New("Carlos", "A", "Munoz", "MD", "resident"), "Carlos A Munoz MD"},
		{"no middle", New("Jane", "", "Doe", "", "admin"), "Jane Doe"},
		{"empty", New("", "", "", "", ""), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDirectory_DisplayNameFallback(t *testing.T) {
	d := Directory{"u1": New("Jane", "", "Doe", "", "")}
	if got := d.DisplayName("u1"); got != "Jane Doe" {
		t.Errorf("DisplayName(u1) = %q", got)
	}
	// Unresolvable uid falls back to the uid itself, never errors.
	if got := d.DisplayName("ghost-uid"); got != "ghost-uid" {
		t.Errorf("DisplayName(ghost-uid) = %q", got)
	}
}

func TestNameKey_ReorderingsUnify(t *testing.T) {
	pairs := [][2]string{
		{"Munoz, Carlos A", "Carlos A Munoz"},
		{"Doe, Jane", "Jane Doe"},
		{"Smith, John Jr", "John Smith Jr."},
	}
	for _, p := range pairs {
		if !SameName(p[0], p[1]) {
			t.Errorf("SameName(%q, %q) = false: %q vs %q", p[0], p[1], NameKey(p[0]), NameKey(p[1]))
		}
	}
}

func TestNameKey_DistinctNames(t *testing.T) {
	if SameName("Jane Doe", "John Doe") {
		t.Error("different first names must not unify")
	}
	if SameName("", "") {
		t.Error("empty names never match")
	}
}

func TestNameKey_SingleWord(t *testing.T) {
	if NameKey("Osler") != "osler|||" {
		t.Errorf("NameKey(Osler) = %q", NameKey("Osler"))
	}
}
