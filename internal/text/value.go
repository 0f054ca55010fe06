package text

import "strings"

// Value is a closed variant over the shapes a searchable field can take:
// a string, a list of values, or a named map of values. Field extraction
// walks this tree instead of reflecting over arbitrary types.
type Value interface {
	isValue()
}

// Str is a string leaf.
type Str string

// List is an ordered collection of values.
type List []Value

// Map is a named collection of values.
type Map map[string]Value

func (Str) isValue()  {}
func (List) isValue() {}
func (Map) isValue()  {}

// StrList wraps a string slice as a List of Str leaves.
func StrList(ss []string) List {
	l := make(List, 0, len(ss))
	for _, s := range ss {
		l = append(l, Str(s))
	}
	return l
}

// Strings collects every string leaf of v in traversal order.
// Map entries are visited in unspecified order; callers that need
// determinism should sort the result.
func Strings(v Value) []string {
	var out []string
	walk(v, func(s string) { out = append(out, s) })
	return out
}

// ContainsFold reports whether any string leaf of v contains substr,
// case-insensitively. FirstContaining returns that leaf.
func ContainsFold(v Value, substr string) bool {
	_, ok := FirstContaining(v, substr)
	return ok
}

// FirstContaining returns the first string leaf of v that contains
// substr case-insensitively.
func FirstContaining(v Value, substr string) (string, bool) {
	needle := strings.ToLower(substr)
	var found string
	ok := false
	walk(v, func(s string) {
		if !ok && strings.Contains(strings.ToLower(s), needle) {
			found, ok = s, true
		}
	})
	return found, ok
}

func walk(v Value, fn func(string)) {
	switch t := v.(type) {
	case Str:
		fn(string(t))
	case List:
		for _, e := range t {
			walk(e, fn)
		}
	case Map:
		for _, e := range t {
			walk(e, fn)
		}
	case nil:
	}
}
