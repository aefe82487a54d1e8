package session

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keys DispatchKey interprets. Keys not bound here and
// not printable are left to the host.
type KeyMap struct {
	// Enter raises a boundary split; NewlineEnter inserts a soft line break.
	Enter, NewlineEnter key.Binding
	Backspace, Delete   key.Binding
	Undo, Redo          key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new block")),
		// Terminals report shift+enter inconsistently; alt+enter is the portable fallback.
		NewlineEnter: key.NewBinding(key.WithKeys("shift+enter", "alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "line break")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete", "ctrl+d"), key.WithHelp("del", "delete right")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),
	}
}

func (km KeyMap) isZero() bool {
	for _, b := range []key.Binding{km.Enter, km.NewlineEnter, km.Backspace, km.Delete, km.Undo, km.Redo} {
		if len(b.Keys()) > 0 {
			return false
		}
	}
	return true
}
