package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	assert.True(t, Matches("Buy Milk", "milk"))
	assert.True(t, Matches("Buy Milk", "UY M"))
	assert.False(t, Matches("Buy Milk", "bread"))

	// Empty query matches everything.
	assert.True(t, Matches("anything", ""))
	assert.True(t, Matches("", ""))

	// Query is literal: whitespace is not trimmed before matching.
	assert.True(t, Matches("a b", " "))
	assert.False(t, Matches("ab", " "))

	// Substring, not token match.
	assert.True(t, Matches("notebook", "ebo"))
}

func TestSnippetCentersOnFirstMatch(t *testing.T) {
	got := Snippet("The quick brown fox jumps", "brown", 10)

	assert.Contains(t, got, "brown")
	assert.True(t, strings.HasPrefix(got, "…"))
	assert.True(t, strings.HasSuffix(got, "…"))
	// Window is 10 runes plus the two ellipsis markers.
	assert.Equal(t, 12, len([]rune(got)))
}

func TestSnippetNoMatchUsesLeadingLines(t *testing.T) {
	assert.Equal(t, "Hello World", Snippet("Hello\nWorld\nExtra", "", 100))
	assert.Equal(t, "Hello World", Snippet("Hello\n\n  \nWorld\nExtra", "", 100))
	assert.Equal(t, "Hello", Snippet("Hello", "", 100))
	assert.Equal(t, "", Snippet("", "", 100))
}

func TestSnippetNoMatchTruncates(t *testing.T) {
	got := Snippet("abcdefghij\nsecond line", "zzz", 5)
	assert.Equal(t, "abcde…", got)
}

func TestSnippetShortTextReturnedWhole(t *testing.T) {
	assert.Equal(t, "has brown", Snippet("has brown", "brown", 50))
}

func TestSnippetWindowAtTextStart(t *testing.T) {
	got := Snippet("brown fox jumps over the lazy dog", "brown", 10)
	assert.True(t, strings.HasPrefix(got, "brown"))
	assert.False(t, strings.HasPrefix(got, "…"))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestSnippetWindowAtTextEnd(t *testing.T) {
	got := Snippet("the lazy dog sat on brown", "brown", 10)
	assert.True(t, strings.HasPrefix(got, "…"))
	assert.False(t, strings.HasSuffix(got, "…"))
	assert.True(t, strings.HasSuffix(got, "brown"))
}

func TestSnippetMultiByte(t *testing.T) {
	// Rune offsets, not byte offsets: every character here is multi-byte.
	text := "ααααααβγβγβγααααααα"
	got := Snippet(text, "βγβγ", 8)
	assert.Contains(t, got, "βγβγ")
	assert.Equal(t, 8+2, len([]rune(got)))
}

func TestHighlightsGreedyNonOverlapping(t *testing.T) {
	got := Highlights("banana", "an")
	assert.Equal(t, []Range{{Start: 1, End: 3}, {Start: 3, End: 5}}, got)
}

func TestHighlightsCaseInsensitive(t *testing.T) {
	got := Highlights("Note NOTE note", "note")
	assert.Equal(t, []Range{{Start: 0, End: 4}, {Start: 5, End: 9}, {Start: 10, End: 14}}, got)
}

func TestHighlightsEmptyQuery(t *testing.T) {
	assert.Nil(t, Highlights("banana", ""))
}

func TestHighlightsNoMatch(t *testing.T) {
	assert.Nil(t, Highlights("banana", "xyz"))
}

func TestHighlightsMultiByteOffsets(t *testing.T) {
	got := Highlights("日本語テスト語", "語")
	assert.Equal(t, []Range{{Start: 2, End: 3}, {Start: 6, End: 7}}, got)
}
