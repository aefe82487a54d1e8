// Package document implements the pure rich-text document model for inkwell.
//
// A Document is an ordered list of top-level blocks (paragraphs and images).
// Paragraphs hold text runs carrying an unordered set of marks. Documents are
// exchanged with hosts as a small HTML-like markup; Parse and Serialize
// round-trip every document the command package can produce.
//
// Positions are 0-based (Block, Offset) where Offset counts grapheme clusters
// within the paragraph's concatenated text.
package document
