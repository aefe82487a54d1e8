package command

import "github.com/iw2rmb/inkwell/document"

// SplitBlock splits the paragraph at `at` into two paragraphs. Marks active
// at the split point carry into both halves. The cursor moves to the start
// of the second paragraph.
//
// On an image block an empty paragraph is inserted after the image.
func SplitBlock(doc document.Document, at document.Pos) Result {
	doc, at = prepare(doc, at)
	i := at.Block
	b := doc.Blocks[i]
	next := document.Pos{Block: i + 1}

	if b.IsImage() {
		return changed(replaceBlocks(doc.Blocks, i+1, i+1, document.Paragraph()), next)
	}

	left, right := splitInlines(b.Inlines, at.Offset)
	return changed(replaceBlocks(doc.Blocks, i, i+1, document.Paragraph(left...), document.Paragraph(right...)), next)
}

// MergeWithPrevious joins the block at `at` onto the previous block. It only
// applies at offset 0 and is a no-op on the first block.
//
// Paragraphs concatenate their runs and the cursor lands on the join point.
// Next to an image the image is removed instead, except that an empty
// paragraph following an image is the one removed.
func MergeWithPrevious(doc document.Document, at document.Pos) Result {
	orig := doc
	doc, at = prepare(doc, at)
	i := at.Block
	if i == 0 || at.Offset != 0 {
		return noop(orig, at)
	}
	prev, cur := doc.Blocks[i-1], doc.Blocks[i]

	switch {
	case cur.IsImage():
		return changed(replaceBlocks(doc.Blocks, i, i+1), document.Pos{Block: i - 1, Offset: prev.Len()})
	case prev.IsImage() && cur.Len() == 0:
		return changed(replaceBlocks(doc.Blocks, i, i+1), document.Pos{Block: i - 1})
	case prev.IsImage():
		return changed(replaceBlocks(doc.Blocks, i-1, i), document.Pos{Block: i - 1})
	}

	joined := document.Paragraph(concatInlines(prev.Inlines, cur.Inlines)...)
	return changed(replaceBlocks(doc.Blocks, i-1, i+1, joined), document.Pos{Block: i - 1, Offset: prev.Len()})
}
