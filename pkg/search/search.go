package search

import (
	"strings"
	"unicode"
)

const ellipsis = "…"

// Range is a half-open [Start, End) span in rune offsets.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Matches reports whether query occurs in text as a case-insensitive
// substring. The empty query matches everything. The query is taken
// literally: no trimming, no wildcards, no word boundaries.
func Matches(text, query string) bool {
	if query == "" {
		return true
	}
	return indexRunes(foldRunes(text), foldRunes(query), 0) >= 0
}

// Snippet produces a display excerpt of text, at most maxLen runes wide
// (plus ellipsis markers).
//
// Without a match (or with an empty query) it returns the first two
// non-empty lines joined by a single space. With a match it centers a
// window of maxLen runes on the first occurrence, splitting the leftover
// budget evenly before and after the match, prefixing an ellipsis when
// the window does not start at the text start and suffixing one when it
// does not reach the end. Offsets are rune-based so multi-byte text is
// cut on character boundaries.
func Snippet(text, query string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	hay := foldRunes(text)
	needle := foldRunes(query)

	var matchAt = -1
	if len(needle) > 0 {
		matchAt = indexRunes(hay, needle, 0)
	}
	if matchAt < 0 {
		return leadingLines(text, maxLen)
	}

	runes := []rune(text)
	n := len(runes)
	if n <= maxLen {
		return text
	}

	budget := maxLen - len(needle)
	if budget < 0 {
		budget = 0
	}
	before := budget / 2

	start := matchAt - before
	if start < 0 {
		start = 0
	}
	end := start + maxLen
	if end > n {
		end = n
		start = end - maxLen
		if start < 0 {
			start = 0
		}
	}

	out := string(runes[start:end])
	if start > 0 {
		out = ellipsis + out
	}
	if end < n {
		out = out + ellipsis
	}
	return out
}

// Highlights returns the disjoint rune ranges where query occurs in text,
// case-insensitive, scanning left to right and resuming after each match
// (greedy non-overlapping). Empty query yields no ranges. The text itself
// is never modified; callers use the ranges for presentation.
func Highlights(text, query string) []Range {
	if query == "" {
		return nil
	}

	hay := foldRunes(text)
	needle := foldRunes(query)

	var ranges []Range
	from := 0
	for {
		idx := indexRunes(hay, needle, from)
		if idx < 0 {
			break
		}
		ranges = append(ranges, Range{Start: idx, End: idx + len(needle)})
		from = idx + len(needle)
	}
	return ranges
}

// leadingLines joins the first two non-empty lines of text with a single
// space, truncating to maxLen runes.
func leadingLines(text string, maxLen int) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
		if len(kept) == 2 {
			break
		}
	}

	joined := strings.Join(kept, " ")
	runes := []rune(joined)
	if len(runes) <= maxLen {
		return joined
	}
	return string(runes[:maxLen]) + ellipsis
}

func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// indexRunes finds the first occurrence of needle in hay at or after from,
// returning the rune offset or -1.
func indexRunes(hay, needle []rune, from int) int {
	if len(needle) == 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(hay); i++ {
		matched := true
		for j := range needle {
			if hay[i+j] != needle[j] {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}
