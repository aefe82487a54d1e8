package editor

import graphemeutil "github.com/iw2rmb/inkwell/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // row start (or page start for MoveDoc)
	DirEnd  // row end (or page end for MoveDoc)
)

type Move struct {
	Unit MoveUnit
	Dir  MoveDir
	// Extend grows the selection instead of clearing it. A selection never
	// leaves the session it started in.
	Extend bool
}

func moveCaret(layout []pageBlock, c Caret, m Move) Caret {
	if len(layout) == 0 {
		return c
	}
	k := find(layout, c)
	pb := layout[k]
	off := clampInt(c.Pos.Offset, 0, pb.len())

	switch m.Unit {
	case MoveGrapheme:
		return moveGrapheme(layout, k, off, m.Dir)
	case MoveWord:
		return moveWord(layout, k, off, m.Dir)
	case MoveLine:
		return moveLine(layout, k, off, m.Dir)
	case MoveDoc:
		switch m.Dir {
		case DirHome, DirUp:
			return layout[0].caret(0)
		case DirEnd, DirDown:
			last := layout[len(layout)-1]
			return last.caret(last.len())
		}
	}
	return pb.caret(off)
}

func moveGrapheme(layout []pageBlock, k, off int, dir MoveDir) Caret {
	pb := layout[k]
	switch dir {
	case DirLeft:
		if off > 0 {
			return pb.caret(off - 1)
		}
		if k > 0 {
			prev := layout[k-1]
			return prev.caret(prev.len())
		}
	case DirRight:
		if off < pb.len() {
			return pb.caret(off + 1)
		}
		if k < len(layout)-1 {
			return layout[k+1].caret(0)
		}
	default:
		return moveLine(layout, k, off, dir)
	}
	return pb.caret(off)
}

func moveWord(layout []pageBlock, k, off int, dir MoveDir) Caret {
	pb := layout[k]
	switch dir {
	case DirLeft:
		if off == 0 && k > 0 {
			return moveGrapheme(layout, k, off, DirLeft)
		}
		return pb.caret(prevWordBoundary(pb.clusters, off))
	case DirRight:
		if off == pb.len() && k < len(layout)-1 {
			return moveGrapheme(layout, k, off, DirRight)
		}
		return pb.caret(nextWordBoundary(pb.clusters, off))
	default:
		return moveLine(layout, k, off, dir)
	}
}

// moveLine moves by soft-line rows. Up from the first row of a block lands
// on the last row of the previous block, keeping the column where possible.
func moveLine(layout []pageBlock, k, off int, dir MoveDir) Caret {
	pb := layout[k]
	row, col := pb.rowOf(off)

	switch dir {
	case DirHome:
		return pb.caret(pb.rowStarts[row])
	case DirEnd:
		return pb.caret(pb.rowEnds[row])
	case DirUp:
		if row > 0 {
			return pb.caret(pb.offsetAt(row-1, col))
		}
		if k > 0 {
			prev := layout[k-1]
			return prev.caret(prev.offsetAt(len(prev.rowStarts)-1, col))
		}
		return pb.caret(0)
	case DirDown:
		if row < len(pb.rowStarts)-1 {
			return pb.caret(pb.offsetAt(row+1, col))
		}
		if k < len(layout)-1 {
			return layout[k+1].caret(layout[k+1].offsetAt(0, col))
		}
		return pb.caret(pb.len())
	}
	return pb.caret(off)
}

// Word boundary rules:
// - skip whitespace, then skip non-whitespace
// - a line break counts as whitespace
func prevWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i > 0 && graphemeutil.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !graphemeutil.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i < len(line) && graphemeutil.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !graphemeutil.IsSpace(line[i]) {
		i++
	}
	return i
}
