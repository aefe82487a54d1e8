// Package grapheme measures and cuts text in user-perceived characters.
//
// Cursor offsets in inkwell documents count grapheme clusters, never bytes or
// runes, so a split never lands inside a combining sequence or emoji.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Cut splits text after n clusters. n is clamped into [0, Count(text)].
func Cut(text string, n int) (before, after string) {
	if n <= 0 || text == "" {
		return "", text
	}
	g := uniseg.NewGraphemes(text)
	idx := 0
	for g.Next() {
		if idx == n {
			start, _ := g.Positions()
			return text[:start], text[start:]
		}
		idx++
	}
	return text, ""
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start || text == "" {
		return ""
	}
	_, rest := Cut(text, start)
	mid, _ := Cut(rest, end-start)
	return mid
}

// Join concatenates grapheme clusters into a single string.
func Join(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// IsSpace reports whether cluster is non-empty and all of its runes are
// Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsLineBreak reports whether cluster ends a line.
func IsLineBreak(cluster string) bool {
	switch cluster {
	case "\n", "\r", "\r\n":
		return true
	}
	return false
}
