package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/document"
)

func (m Model) updateKey(msg tea.KeyMsg) Model {
	if !m.focused {
		return m
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.insertText(normalizeNewlines(string(msg.Runes)))
		}
		return m
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.move(Move{Unit: MoveGrapheme, Dir: DirLeft})
	case key.Matches(msg, km.Right):
		m.move(Move{Unit: MoveGrapheme, Dir: DirRight})
	case key.Matches(msg, km.Up):
		m.move(Move{Unit: MoveLine, Dir: DirUp})
	case key.Matches(msg, km.Down):
		m.move(Move{Unit: MoveLine, Dir: DirDown})

	case key.Matches(msg, km.ShiftLeft):
		m.move(Move{Unit: MoveGrapheme, Dir: DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		m.move(Move{Unit: MoveLine, Dir: DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		m.move(Move{Unit: MoveLine, Dir: DirDown, Extend: true})

	case key.Matches(msg, km.WordLeft):
		m.move(Move{Unit: MoveWord, Dir: DirLeft})
	case key.Matches(msg, km.WordRight):
		m.move(Move{Unit: MoveWord, Dir: DirRight})

	case key.Matches(msg, km.Home):
		m.move(Move{Unit: MoveLine, Dir: DirHome})
	case key.Matches(msg, km.End):
		m.move(Move{Unit: MoveLine, Dir: DirEnd})
	case key.Matches(msg, km.ShiftHome):
		m.move(Move{Unit: MoveLine, Dir: DirHome, Extend: true})
	case key.Matches(msg, km.ShiftEnd):
		m.move(Move{Unit: MoveLine, Dir: DirEnd, Extend: true})
	case key.Matches(msg, km.DocStart):
		m.move(Move{Unit: MoveDoc, Dir: DirHome})
	case key.Matches(msg, km.DocEnd):
		m.move(Move{Unit: MoveDoc, Dir: DirEnd})

	case key.Matches(msg, km.Bold):
		m.toggleMark(document.Bold)
	case key.Matches(msg, km.Italic):
		m.toggleMark(document.Italic)
	case key.Matches(msg, km.Underline):
		m.toggleMark(document.Underline)
	case key.Matches(msg, km.Strike):
		m.toggleMark(document.Strike)
	case key.Matches(msg, km.Code):
		m.toggleMark(document.Code)

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.copySelection()
		if !m.cfg.ReadOnly {
			m.deleteSelection()
		}
	case key.Matches(msg, km.Paste):
		if !m.cfg.ReadOnly {
			m.pasteClipboard()
		}

	default:
		if m.cfg.ReadOnly {
			return m
		}
		if _, ok := m.Selection(); ok && key.Matches(msg, km.Backspace, km.Delete) {
			m.deleteSelection()
			return m
		}
		if (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt {
			m.deleteSelection()
		}
		m.sel = selectionState{}
		if _, err := m.page.DispatchKey(msg); err != nil {
			m.log.Debug("dispatch key", zap.Stringer("key", msg), zap.Error(err))
		}
	}

	return m
}

func (m *Model) move(mv Move) {
	from := m.caret()
	to := moveCaret(m.layout, from, mv)
	if !mv.Extend {
		m.sel = selectionState{}
		m.setCaret(to)
		return
	}
	if to.Session != from.Session {
		return
	}
	if !m.sel.active || m.sel.anchor.Session != from.Session {
		m.sel = selectionState{active: true, anchor: from}
	}
	m.setCaret(to)
}

func (m *Model) toggleMark(mark document.Mark) {
	r, ok := m.Selection()
	if !ok || m.cfg.ReadOnly {
		return
	}
	s := m.current()
	at := s.Cursor()
	if _, err := s.ToggleMark(r, mark); err != nil {
		m.log.Debug("toggle mark", zap.Stringer("mark", mark), zap.Error(err))
	}
	// Keep the selection on screen.
	if err := s.SetCursor(at); err != nil {
		m.log.Debug("restore cursor", zap.Error(err))
	}
}

func (m *Model) deleteSelection() {
	r, ok := m.Selection()
	m.sel = selectionState{}
	if !ok {
		return
	}
	if _, err := m.current().DeleteRange(r); err != nil {
		m.log.Debug("delete selection", zap.Error(err))
	}
}

func (m *Model) insertText(s string) {
	m.deleteSelection()
	c := m.current()
	if _, err := c.InsertText(c.Cursor(), s); err != nil {
		m.log.Debug("insert text", zap.Error(err))
	}
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	r, ok := m.Selection()
	if !ok {
		return
	}
	s := textInRange(m.current().Document(), r)
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.log.Debug("clipboard write", zap.Error(err))
	}
}

func (m *Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	m.insertText(normalizeNewlines(s))
}
