package editor

import (
	"github.com/iw2rmb/inkwell/blocks"
	"github.com/iw2rmb/inkwell/document"
	graphemeutil "github.com/iw2rmb/inkwell/internal/grapheme"
)

// Caret is a cursor position on a page: a block session and a position in
// its document.
type Caret struct {
	Session int
	Pos     document.Pos
}

// pageBlock is one top-level block as laid out on the page.
type pageBlock struct {
	session int
	index   int // block index inside the session document
	block   document.Block

	clusters []string
	// rowStarts holds the offset of every soft-line start; rowEnds the
	// offset where each row's text ends, before its line break.
	rowStarts []int
	rowEnds   []int
}

func newPageBlock(session, index int, b document.Block) pageBlock {
	pb := pageBlock{session: session, index: index, block: b}
	if b.IsImage() {
		pb.rowStarts, pb.rowEnds = []int{0}, []int{0}
		return pb
	}
	pb.clusters = graphemeutil.Split(b.Text())
	pb.rowStarts = []int{0}
	for i, c := range pb.clusters {
		if graphemeutil.IsLineBreak(c) {
			pb.rowEnds = append(pb.rowEnds, i)
			pb.rowStarts = append(pb.rowStarts, i+1)
		}
	}
	pb.rowEnds = append(pb.rowEnds, len(pb.clusters))
	return pb
}

func (pb pageBlock) len() int { return len(pb.clusters) }

// rowOf returns the soft-line row holding offset and the column in it.
func (pb pageBlock) rowOf(offset int) (row, col int) {
	for r := len(pb.rowStarts) - 1; r >= 0; r-- {
		if offset >= pb.rowStarts[r] {
			return r, offset - pb.rowStarts[r]
		}
	}
	return 0, offset
}

// offsetAt returns the offset at col of row, clamped to the row text.
func (pb pageBlock) offsetAt(row, col int) int {
	row = clampInt(row, 0, len(pb.rowStarts)-1)
	return minInt(pb.rowStarts[row]+maxInt(col, 0), pb.rowEnds[row])
}

// layoutPage flattens the page into its top-level blocks in reading order.
func layoutPage(p *blocks.Page) []pageBlock {
	var out []pageBlock
	for i := 0; i < p.Len(); i++ {
		s, _ := p.Block(i)
		for j, b := range s.Document().Blocks {
			out = append(out, newPageBlock(i, j, b))
		}
	}
	return out
}

// find returns the index in layout of the block holding c.
func find(layout []pageBlock, c Caret) int {
	for k, pb := range layout {
		if pb.session == c.Session && pb.index == c.Pos.Block {
			return k
		}
	}
	return 0
}

func (pb pageBlock) caret(offset int) Caret {
	return Caret{Session: pb.session, Pos: document.Pos{Block: pb.index, Offset: offset}}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
