package command

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/iw2rmb/inkwell/document"
)

// ErrInvalidURI rejects an image source that is empty or not a syntactically
// valid URI reference.
var ErrInvalidURI = errors.New("invalid uri")

// ValidateURI reports whether src is usable as an image source.
func ValidateURI(src string) error {
	if src == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURI)
	}
	if i := strings.IndexFunc(src, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}); i >= 0 {
		return fmt.Errorf("%w: %q: whitespace or control character at byte %d", ErrInvalidURI, src, i)
	}
	u, err := url.Parse(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if u.Scheme != "" && u.Host == "" && u.Opaque == "" && u.Path == "" {
		return fmt.Errorf("%w: %q: scheme without target", ErrInvalidURI, src)
	}
	if u.Scheme == "" && u.Host == "" && u.Path == "" {
		return fmt.Errorf("%w: %q: no path", ErrInvalidURI, src)
	}
	return nil
}

// InsertImage splits the paragraph at `at` and inserts an image between the
// halves. The cursor moves to the start of the second half. On an image
// block the new image goes right after it.
//
// The document is returned unchanged with an error matching ErrInvalidURI
// when src is not a valid URI.
func InsertImage(doc document.Document, at document.Pos, src string) (Result, error) {
	if err := ValidateURI(src); err != nil {
		return noop(doc, at), err
	}
	doc, at = prepare(doc, at)
	i := at.Block
	b := doc.Blocks[i]
	img := document.Image(src, false)

	if b.IsImage() {
		return changed(replaceBlocks(doc.Blocks, i+1, i+1, img), document.Pos{Block: i + 1}), nil
	}

	left, right := splitInlines(b.Inlines, at.Offset)
	repl := []document.Block{document.Paragraph(left...), img, document.Paragraph(right...)}
	return changed(replaceBlocks(doc.Blocks, i, i+1, repl...), document.Pos{Block: i + 2}), nil
}
