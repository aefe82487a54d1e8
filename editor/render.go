package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/document"
	graphemeutil "github.com/iw2rmb/inkwell/internal/grapheme"
)

// cellClass is the rendering class of one grapheme. Adjacent graphemes of
// the same class render as one styled span.
type cellClass struct {
	marks    document.MarkSet
	selected bool
	cursor   bool
}

type span struct {
	class cellClass
	text  string
}

type renderRow struct {
	spans []span
	cells int
}

func (r *renderRow) add(c cellClass, text string, w int) {
	if n := len(r.spans); n > 0 && r.spans[n-1].class == c {
		r.spans[n-1].text += text
	} else {
		r.spans = append(r.spans, span{class: c, text: text})
	}
	r.cells += w
}

func (m *Model) renderContent() string {
	caret := m.caret()
	sel, selOK := m.Selection()
	st := m.cfg.Style

	digits := 0
	if m.cfg.ShowBlockNums {
		digits = len(fmt.Sprint(len(m.layout)))
	}
	width := m.viewport.Width
	if digits > 0 {
		width -= digits + 1
	}

	var out []string
	m.cursorRow = 0
	for k, pb := range m.layout {
		hasCursor := m.focused && pb.session == caret.Session && pb.index == caret.Pos.Block
		var rows []renderRow
		if pb.block.IsImage() {
			rows = []renderRow{renderImage(pb.block, hasCursor)}
		} else {
			var cursorRow int
			selStart, selEnd := blockSelection(pb, caret.Session, sel, selOK)
			rows, cursorRow = renderParagraph(pb, hasCursor, caret.Pos.Offset, selStart, selEnd, width)
			if hasCursor {
				m.cursorRow = len(out) + cursorRow
			}
		}
		if hasCursor && pb.block.IsImage() {
			m.cursorRow = len(out)
		}

		for i, row := range rows {
			var sb strings.Builder
			if digits > 0 {
				num := fmt.Sprintf("%*s", digits, "")
				if i == 0 {
					num = fmt.Sprintf("%*d", digits, k+1)
				}
				gutter := st.Gutter
				if hasCursor {
					gutter = st.GutterActive
				}
				sb.WriteString(gutter.Render(num))
				sb.WriteString(st.Gutter.Render(" "))
			}
			for _, sp := range row.spans {
				sb.WriteString(m.styleFor(pb.block, sp.class).Render(sp.text))
			}
			out = append(out, sb.String())
		}
	}
	return strings.Join(out, "\n")
}

func (m *Model) styleFor(b document.Block, c cellClass) lipgloss.Style {
	st := m.cfg.Style
	base := st.forMarks(c.marks)
	if b.IsImage() {
		base = st.Image.Inherit(st.Text)
	}
	switch {
	case c.cursor:
		return st.Cursor.Inherit(base)
	case c.selected:
		return st.Selection.Inherit(base)
	default:
		return base
	}
}

func renderImage(b document.Block, hasCursor bool) renderRow {
	label := "[image: " + b.Src + "]"
	if b.InlineFlow {
		label = "[inline image: " + b.Src + "]"
	}
	var row renderRow
	row.add(cellClass{cursor: hasCursor}, label, 0)
	return row
}

// blockSelection returns the selected offsets [start, end) within pb.
func blockSelection(pb pageBlock, session int, r document.Range, ok bool) (start, end int) {
	if !ok || pb.session != session || pb.index < r.Start.Block || pb.index > r.End.Block {
		return 0, 0
	}
	start, end = 0, pb.len()
	if pb.index == r.Start.Block {
		start = r.Start.Offset
	}
	if pb.index == r.End.Block {
		end = r.End.Offset
	}
	return start, end
}

// renderParagraph lays a paragraph out in rows. Soft line breaks start a new
// row and rows wider than width wrap at grapheme boundaries. It returns the
// row that holds the cursor.
func renderParagraph(pb pageBlock, hasCursor bool, cursor, selStart, selEnd, width int) ([]renderRow, int) {
	marks := make([]document.MarkSet, 0, pb.len())
	for _, t := range pb.block.Inlines {
		for range graphemeutil.Split(t.Content) {
			marks = append(marks, t.Marks)
		}
	}

	rows := []renderRow{{}}
	cursorRow := 0
	newRow := func() { rows = append(rows, renderRow{}) }

	for i, c := range pb.clusters {
		var ms document.MarkSet
		if i < len(marks) {
			ms = marks[i]
		}
		class := cellClass{marks: ms, selected: i >= selStart && i < selEnd, cursor: hasCursor && i == cursor}
		if class.cursor {
			cursorRow = len(rows) - 1
		}
		if graphemeutil.IsLineBreak(c) {
			// The break itself shows only as the cursor or selection cell.
			if class.cursor || class.selected {
				rows[len(rows)-1].add(class, " ", 1)
			}
			newRow()
			continue
		}

		row := &rows[len(rows)-1]
		w := cellWidth(c, row.cells)
		if width > 0 && row.cells > 0 && row.cells+w > width {
			newRow()
			row = &rows[len(rows)-1]
			if class.cursor {
				cursorRow = len(rows) - 1
			}
		}
		text := c
		if c == "\t" {
			text = strings.Repeat(" ", w)
		}
		row.add(class, text, w)
	}

	// Cursor at the end of the paragraph is a 1-cell placeholder.
	if hasCursor && cursor >= pb.len() {
		row := &rows[len(rows)-1]
		if width > 0 && row.cells > 0 && row.cells+1 > width {
			newRow()
			row = &rows[len(rows)-1]
		}
		row.add(cellClass{cursor: true}, " ", 1)
		cursorRow = len(rows) - 1
	}
	return rows, cursorRow
}
