// Package profile resolves author user ids to display names.
package profile

import "strings"

// Profile is one entry of the user directory.
type Profile struct {
	first  string
	middle string
	last   string
	suffix string
	role   string
}

// New creates a profile from its name parts and role.
func New(first, middle, last, suffix, role string) Profile {
	return Profile{first: first, middle: middle, last: last, suffix: suffix, role: role}
}

// First returns the first name.
func (p Profile) First() string { return p.first }

// Middle returns the middle name.
func (p Profile) Middle() string { return p.middle }

// Last returns the last name.
func (p Profile) Last() string { return p.last }

// Suffix returns the name suffix (Jr, III, MD, ...).
func (p Profile) Suffix() string { return p.suffix }

// Role returns the account role.
func (p Profile) Role() string { return p.role }

// DisplayName joins the non-empty name parts with single spaces.
func (p Profile) DisplayName() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.first, p.middle, p.last, p.suffix} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Directory maps user ids to profiles.
type Directory map[string]Profile

// DisplayName resolves a uid to a display name, falling back to the raw
// uid when the directory has no entry for it.
func (d Directory) DisplayName(uid string) string {
	if p, ok := d[uid]; ok {
		if name := p.DisplayName(); name != "" {
			return name
		}
	}
	return uid
}

// knownSuffixes are name suffixes recognized by NameKey.
var knownSuffixes = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {},
	"md": {}, "phd": {}, "do": {},
}

// NameKey canonicalizes a person name to "last|first|middleInitial|suffix"
// (lowercased), so that "Munoz, Carlos A" and "Carlos A Munoz" produce the
// same key. An empty input yields an empty key.
func NameKey(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var first, middle, last, suffix string
	if before, after, ok := strings.Cut(name, ","); ok {
		last = strings.TrimSpace(before)
		rest := strings.Fields(after)
		rest, suffix = splitSuffix(rest)
		if len(rest) > 0 {
			first = rest[0]
			middle = strings.Join(rest[1:], " ")
		}
	} else {
		fields := strings.Fields(name)
		fields, suffix = splitSuffix(fields)
		switch len(fields) {
		case 0:
		case 1:
			last = fields[0]
		default:
			first = fields[0]
			last = fields[len(fields)-1]
			middle = strings.Join(fields[1:len(fields)-1], " ")
		}
	}

	mi := ""
	if middle != "" {
		mi = string([]rune(middle)[0])
	}
	key := strings.Join([]string{last, first, mi, suffix}, "|")
	return strings.ToLower(strings.TrimSpace(key))
}

// splitSuffix pops a trailing recognized suffix off the name fields.
func splitSuffix(fields []string) ([]string, string) {
	if len(fields) < 2 {
		return fields, ""
	}
	lastField := strings.ToLower(strings.Trim(fields[len(fields)-1], "."))
	if _, ok := knownSuffixes[lastField]; ok {
		return fields[:len(fields)-1], lastField
	}
	return fields, ""
}

// SameName reports whether two free-form names canonicalize to the same key.
func SameName(a, b string) bool {
	ka, kb := NameKey(a), NameKey(b)
	return ka != "" && ka == kb
}
