package document

// NormalizeInlines merges adjacent runs with identical mark sets and drops
// empty runs. The input slice is not modified.
func NormalizeInlines(in []Text) []Text {
	var out []Text
	for _, t := range in {
		if t.Content == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Marks == t.Marks {
			out[n-1].Content += t.Content
			continue
		}
		out = append(out, t)
	}
	return out
}

// Normalize returns the canonical form of d. The result always holds at
// least one block.
func Normalize(d Document) Document {
	if len(d.Blocks) == 0 {
		return Empty()
	}
	out := Document{Blocks: make([]Block, 0, len(d.Blocks))}
	for _, b := range d.Blocks {
		switch b.Kind {
		case KindImage:
			out.Blocks = append(out.Blocks, Image(b.Src, b.InlineFlow))
		default:
			out.Blocks = append(out.Blocks, Block{Kind: KindParagraph, Inlines: NormalizeInlines(b.Inlines)})
		}
	}
	return out
}

// Equal reports structural equality of a and b after normalization.
func Equal(a, b Document) bool {
	a, b = Normalize(a), Normalize(b)
	if len(a.Blocks) != len(b.Blocks) {
		return false
	}
	for i := range a.Blocks {
		if !blockEqual(a.Blocks[i], b.Blocks[i]) {
			return false
		}
	}
	return true
}

func blockEqual(a, b Block) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindImage {
		return a.Src == b.Src && a.InlineFlow == b.InlineFlow
	}
	if len(a.Inlines) != len(b.Inlines) {
		return false
	}
	for i := range a.Inlines {
		if a.Inlines[i] != b.Inlines[i] {
			return false
		}
	}
	return true
}
