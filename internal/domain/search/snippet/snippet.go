package snippet

import (
	"strings"
	"unicode"
)

const (
	// DefaultRadius is the number of characters kept on each side of a match.
	DefaultRadius = 50

	ellipsis = "..."
)

// Locate returns the character index of the first case-insensitive
// occurrence of query in content, or -1 when content does not match.
// Folding happens rune by rune, so the returned index is valid for the
// original text; a byte-based search over a lowered copy would
// misalign for multibyte runes.
func Locate(content, query string) int {
	c := fold(content)
	q := fold(query)
	if len(q) == 0 || len(q) > len(c) {
		return -1
	}

outer:
	for i := 0; i <= len(c)-len(q); i++ {
		for j := range q {
			if c[i+j] != q[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

// Extract returns the window of content around a match, framed with
// ellipses. matchIdx and queryLen are in characters; the window keeps
// radius characters on each side and is clamped to the content bounds.
func Extract(content string, matchIdx, queryLen, radius int) string {
	runes := []rune(content)

	start := matchIdx - radius
	if start < 0 {
		start = 0
	}
	end := matchIdx + queryLen + radius
	if end > len(runes) {
		end = len(runes)
	}
	if start > end {
		start = end
	}

	return ellipsis + string(runes[start:end]) + ellipsis
}

// Count returns the number of non-overlapping case-insensitive
// occurrences of query in content.
func Count(content, query string) int {
	q := string(fold(query))
	if q == "" {
		return 0
	}
	return strings.Count(string(fold(content)), q)
}

// fold lowercases a string rune by rune. unicode.ToLower maps every
// rune to exactly one rune, so the folded slice is index-aligned with
// the original.
func fold(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}
