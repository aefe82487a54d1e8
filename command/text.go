package command

import (
	"github.com/iw2rmb/inkwell/document"
	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// InsertText inserts text at `at`. The new characters take the marks of the
// character before the cursor (or the first character at offset 0).
func InsertText(doc document.Document, at document.Pos, text string) Result {
	ndoc, nat := prepare(doc, at)
	b := ndoc.Blocks[nat.Block]
	var marks document.MarkSet
	if b.IsParagraph() {
		marks = marksAt(b.Inlines, nat.Offset)
	}
	return InsertRun(doc, at, document.Text{Content: text, Marks: marks})
}

// InsertRun inserts run at `at` with exactly the run's marks. On an image
// block the run starts a new paragraph after the image.
func InsertRun(doc document.Document, at document.Pos, run document.Text) Result {
	if run.Content == "" {
		return noop(doc, at)
	}
	doc, at = prepare(doc, at)
	i := at.Block
	b := doc.Blocks[i]
	n := grapheme.Count(run.Content)

	if b.IsImage() {
		return changed(replaceBlocks(doc.Blocks, i+1, i+1, document.Paragraph(run)), document.Pos{Block: i + 1, Offset: n})
	}

	left, right := splitInlines(b.Inlines, at.Offset)
	p := document.Paragraph(concatInlines(left, []document.Text{run}, right)...)
	return changed(replaceBlocks(doc.Blocks, i, i+1, p), document.Pos{Block: i, Offset: at.Offset + n})
}

// DeleteBackward applies backspace semantics: it removes the cluster before
// the cursor, or merges with the previous block at offset 0. An image that is
// the first block is replaced by an empty paragraph.
func DeleteBackward(doc document.Document, at document.Pos) Result {
	orig := doc
	doc, at = prepare(doc, at)
	i := at.Block
	b := doc.Blocks[i]

	if at.Offset == 0 {
		if i == 0 && b.IsImage() {
			return changed(replaceBlocks(doc.Blocks, 0, 1, document.Paragraph()), document.Pos{})
		}
		res := MergeWithPrevious(doc, at)
		if !res.Changed {
			return noop(orig, at)
		}
		return res
	}
	return DeleteRange(doc, document.Range{
		Start: document.Pos{Block: i, Offset: at.Offset - 1},
		End:   at,
	})
}

// DeleteForward applies delete-key semantics: it removes the cluster after
// the cursor, or pulls the next block into this one at the end of a
// paragraph. An image under the cursor is removed.
func DeleteForward(doc document.Document, at document.Pos) Result {
	orig := doc
	doc, at = prepare(doc, at)
	i := at.Block
	b := doc.Blocks[i]

	if b.IsImage() {
		if len(doc.Blocks) == 1 {
			return changed([]document.Block{document.Paragraph()}, document.Pos{})
		}
		next := document.Pos{Block: i}
		if i == len(doc.Blocks)-1 {
			next = document.Pos{Block: i - 1, Offset: doc.Blocks[i-1].Len()}
		}
		return changed(replaceBlocks(doc.Blocks, i, i+1), next)
	}
	if at.Offset < b.Len() {
		return DeleteRange(doc, document.Range{Start: at, End: document.Pos{Block: i, Offset: at.Offset + 1}})
	}
	if i == len(doc.Blocks)-1 {
		return noop(orig, at)
	}
	res := MergeWithPrevious(doc, document.Pos{Block: i + 1})
	res.Cursor = at
	return res
}

// DeleteRange removes the content of r. Blocks fully inside r are dropped and
// the partial paragraphs at both ends are joined. An image at the end of r
// with offset 0 lies outside the half-open range and is kept.
func DeleteRange(doc document.Document, r document.Range) Result {
	orig := doc
	doc = document.Normalize(doc)
	r = document.NormalizeRange(document.ClampRange(doc, r))
	if r.IsEmpty() {
		return noop(orig, r.Start)
	}
	first, last := doc.Blocks[r.Start.Block], doc.Blocks[r.End.Block]

	var left []document.Text
	if first.IsParagraph() {
		left, _ = splitInlines(first.Inlines, r.Start.Offset)
	}

	repl := make([]document.Block, 0, 2)
	if last.IsParagraph() {
		_, right := splitInlines(last.Inlines, r.End.Offset)
		repl = append(repl, document.Paragraph(concatInlines(left, right)...))
	} else {
		repl = append(repl, document.Paragraph(left...), last)
	}
	return changed(replaceBlocks(doc.Blocks, r.Start.Block, r.End.Block+1, repl...), document.Pos{Block: r.Start.Block, Offset: r.Start.Offset})
}
