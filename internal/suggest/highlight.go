package suggest

import (
	"sort"
	"strings"
	"unicode"
)

// Range is a half-open [Start, End) character range of a suggestion that
// matched a query token, for bold-facing in the UI.
type Range struct {
	Start int
	End   int
}

// HighlightRanges locates the first case-insensitive occurrence of each
// query token inside the suggestion and merges overlapping or adjacent
// ranges. Offsets are rune-based.
func HighlightRanges(suggestion, query string) []Range {
	sugg := []rune(strings.ToLower(suggestion))
	tokens := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var ranges []Range
	for _, tok := range tokens {
		if idx := indexRunes(sugg, []rune(tok)); idx >= 0 {
			ranges = append(ranges, Range{Start: idx, End: idx + len([]rune(tok))})
		}
	}
	return mergeRanges(ranges)
}

// indexRunes is strings.Index over rune slices.
func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// mergeRanges sorts by start and coalesces overlapping or touching ranges.
func mergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].End < ranges[j].End
	})
	merged := []Range{ranges[0]}
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
