package document

// Pos points into a document by (block, offset). Offset counts grapheme
// clusters within the block's text; image blocks only have offset 0.
type Pos struct {
	Block  int
	Offset int
}

// Range is a half-open selection in document coordinates: [Start, End).
type Range struct {
	Start Pos
	End   Pos
}

func ComparePos(a, b Pos) int {
	if a.Block < b.Block {
		return -1
	}
	if a.Block > b.Block {
		return 1
	}
	if a.Offset < b.Offset {
		return -1
	}
	if a.Offset > b.Offset {
		return 1
	}
	return 0
}

// NormalizeRange orders r so that Start <= End.
func NormalizeRange(r Range) Range {
	if ComparePos(r.Start, r.End) <= 0 {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampPos clamps p into the bounds of d.
//
// The returned Pos always satisfies:
// - 0 <= Block < d.Len() (with an empty block list treated as one block)
// - 0 <= Offset <= d.Blocks[Block].Len()
func ClampPos(d Document, p Pos) Pos {
	n := len(d.Blocks)
	if n == 0 {
		return Pos{}
	}
	block := clampInt(p.Block, 0, n-1)
	return Pos{Block: block, Offset: clampInt(p.Offset, 0, d.Blocks[block].Len())}
}

func ClampRange(d Document, r Range) Range {
	return Range{Start: ClampPos(d, r.Start), End: ClampPos(d, r.End)}
}

// End returns the position after the last cluster of the last block.
func (d Document) End() Pos {
	if len(d.Blocks) == 0 {
		return Pos{}
	}
	last := len(d.Blocks) - 1
	return Pos{Block: last, Offset: d.Blocks[last].Len()}
}
