package editor

import (
	"strings"

	"github.com/iw2rmb/inkwell/document"
	graphemeutil "github.com/iw2rmb/inkwell/internal/grapheme"
)

// Clipboard provides editor-level clipboard integration.
//
// Errors must not crash the UI; failures are ignored.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// textInRange returns the plain text of r, with blocks separated by "\n".
// Images contribute nothing.
func textInRange(doc document.Document, r document.Range) string {
	r = document.NormalizeRange(document.ClampRange(doc, r))
	if r.IsEmpty() {
		return ""
	}
	var parts []string
	for i := r.Start.Block; i <= r.End.Block; i++ {
		b := doc.Blocks[i]
		if b.IsImage() {
			continue
		}
		start, end := 0, b.Len()
		if i == r.Start.Block {
			start = r.Start.Offset
		}
		if i == r.End.Block {
			end = r.End.Offset
		}
		parts = append(parts, graphemeutil.Slice(b.Text(), start, end))
	}
	return strings.Join(parts, "\n")
}

// Normalize newlines from external sources.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
