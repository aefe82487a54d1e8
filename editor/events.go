package editor

import "github.com/iw2rmb/inkwell/document"

type ChangeEvent struct {
	// Version counts the editor updates that changed anything observable.
	Version uint64
	Caret   Caret
	// Block is the page-wide index of the block holding the caret.
	Block     int
	Selection struct {
		Range  document.Range
		Active bool
	}

	// Whole page markup; hosts diff it if needed.
	Markup string
}

func (m *Model) buildChangeEvent() ChangeEvent {
	ev := ChangeEvent{
		Version: m.version,
		Caret:   m.caret(),
		Block:   find(m.layout, m.caret()),
		Markup:  m.page.Markup(),
	}
	if r, ok := m.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	return ev
}
