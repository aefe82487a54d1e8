package command

import "github.com/iw2rmb/inkwell/document"

// ToggleMark toggles mark across r as a whole: when every character in r
// already carries mark it is removed from all of them, otherwise it is added
// to all of them. Images inside r are skipped. An empty range, or one that
// covers no text, is a no-op.
func ToggleMark(doc document.Document, r document.Range, mark document.Mark) Result {
	orig := doc
	doc = document.Normalize(doc)
	r = document.NormalizeRange(document.ClampRange(doc, r))
	if r.IsEmpty() || !mark.Valid() {
		return noop(orig, r.End)
	}

	covered, uniform := false, true
	for i := r.Start.Block; i <= r.End.Block; i++ {
		s, e, ok := blockSpan(doc.Blocks[i], i, r)
		if !ok {
			continue
		}
		for _, t := range sliceInlines(doc.Blocks[i].Inlines, s, e) {
			if t.Content == "" {
				continue
			}
			covered = true
			if !t.Marks.Has(mark) {
				uniform = false
			}
		}
	}
	if !covered {
		return noop(orig, r.End)
	}

	apply := func(m document.MarkSet) document.MarkSet { return m.With(mark) }
	if uniform {
		apply = func(m document.MarkSet) document.MarkSet { return m.Without(mark) }
	}

	blocks := make([]document.Block, len(doc.Blocks))
	copy(blocks, doc.Blocks)
	for i := r.Start.Block; i <= r.End.Block; i++ {
		s, e, ok := blockSpan(doc.Blocks[i], i, r)
		if !ok {
			continue
		}
		in := doc.Blocks[i].Inlines
		left, rest := splitInlines(in, s)
		mid, right := splitInlines(rest, e-s)
		marked := make([]document.Text, len(mid))
		for j, t := range mid {
			marked[j] = document.Text{Content: t.Content, Marks: apply(t.Marks)}
		}
		blocks[i] = document.Paragraph(concatInlines(left, marked, right)...)
	}
	return changed(blocks, r.End)
}

// blockSpan returns the cluster span [s, e) of block i covered by r.
func blockSpan(b document.Block, i int, r document.Range) (s, e int, ok bool) {
	if !b.IsParagraph() {
		return 0, 0, false
	}
	s, e = 0, b.Len()
	if i == r.Start.Block {
		s = r.Start.Offset
	}
	if i == r.End.Block {
		e = r.End.Offset
	}
	return s, e, s < e
}
