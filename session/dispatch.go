package session

import (
	"fmt"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/command"
	"github.com/iw2rmb/inkwell/document"
	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// KeyAction names what DispatchKey did with a key.
type KeyAction uint8

const (
	ActionNone KeyAction = iota
	ActionBoundarySplit
	ActionBoundaryDelete
	ActionLineBreak
	ActionDeleteBackward
	ActionMergeWithPrevious
	ActionDeleteForward
	ActionInsertText
	ActionUndo
	ActionRedo
)

var keyActionNames = [...]string{
	ActionNone:              "none",
	ActionBoundarySplit:     "boundary-split",
	ActionBoundaryDelete:    "boundary-delete",
	ActionLineBreak:         "line-break",
	ActionDeleteBackward:    "delete-backward",
	ActionMergeWithPrevious: "merge-with-previous",
	ActionDeleteForward:     "delete-forward",
	ActionInsertText:        "insert-text",
	ActionUndo:              "undo",
	ActionRedo:              "redo",
}

func (a KeyAction) String() string {
	if int(a) < len(keyActionNames) {
		return keyActionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// KeyResult reports how DispatchKey handled a key.
type KeyResult struct {
	// Handled is false for keys the session does not interpret. The host
	// may process those itself.
	Handled bool
	Action  KeyAction
	// Changed reports whether the document changed.
	Changed bool
	Cursor  document.Pos
}

// DispatchKey interprets k with the cursor at `at`.
//
// Enter never splits the document: it raises EventBoundarySplit and the host
// decides what a new block means. Backspace at the start of a block merges
// with the previous block. At the start of the first block it raises
// EventBoundaryDelete when the document is empty, and otherwise deletes
// normally. An image counts as content: Backspace on an image-only document
// turns the image into an empty paragraph instead of raising
// EventBoundaryDelete.
func (c *Controller) DispatchKey(k fmt.Stringer, at document.Pos) (KeyResult, error) {
	if err := c.alive(); err != nil {
		return KeyResult{}, err
	}
	at = document.ClampPos(c.doc, at)
	c.cursor = at
	km := c.keys

	switch {
	case key.Matches(k, km.Enter):
		c.emit(EventBoundarySplit)
		return KeyResult{Handled: true, Action: ActionBoundarySplit, Cursor: c.cursor}, nil

	case key.Matches(k, km.NewlineEnter):
		return c.dispatch(ActionLineBreak, command.Intent{Kind: command.KindInsertText, At: at, Text: "\n"})

	case key.Matches(k, km.Backspace):
		switch {
		case at.Offset > 0:
			return c.dispatch(ActionDeleteBackward, command.Intent{Kind: command.KindDeleteBackward, At: at})
		case at.Block > 0:
			return c.dispatch(ActionMergeWithPrevious, command.Intent{Kind: command.KindMergeWithPrevious, At: at})
		case c.doc.IsEmpty():
			c.emit(EventBoundaryDelete)
			return KeyResult{Handled: true, Action: ActionBoundaryDelete, Cursor: c.cursor}, nil
		default:
			return c.dispatch(ActionDeleteBackward, command.Intent{Kind: command.KindDeleteBackward, At: at})
		}

	case key.Matches(k, km.Delete):
		return c.dispatch(ActionDeleteForward, command.Intent{Kind: command.KindDeleteForward, At: at})

	case key.Matches(k, km.Undo):
		v := c.version
		if _, err := c.Undo(); err != nil {
			return KeyResult{}, err
		}
		return KeyResult{Handled: true, Action: ActionUndo, Changed: c.version != v, Cursor: c.cursor}, nil

	case key.Matches(k, km.Redo):
		v := c.version
		if _, err := c.Redo(); err != nil {
			return KeyResult{}, err
		}
		return KeyResult{Handled: true, Action: ActionRedo, Changed: c.version != v, Cursor: c.cursor}, nil
	}

	if text, ok := printable(k); ok {
		return c.dispatch(ActionInsertText, command.Intent{Kind: command.KindInsertText, At: at, Text: text})
	}
	return KeyResult{Action: ActionNone, Cursor: c.cursor}, nil
}

func (c *Controller) dispatch(action KeyAction, in command.Intent) (KeyResult, error) {
	v := c.version
	if _, err := c.Apply(in); err != nil {
		return KeyResult{}, err
	}
	return KeyResult{Handled: true, Action: action, Changed: c.version != v, Cursor: c.cursor}, nil
}

// printable returns the text a key types. Bubble Tea rune keys (including
// pastes) type their runes; any other key types itself when its name is a
// single printable grapheme cluster.
func printable(k fmt.Stringer) (string, bool) {
	if msg, ok := k.(tea.KeyMsg); ok {
		switch {
		case msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) > 0:
			return string(msg.Runes), true
		case msg.Type == tea.KeySpace && !msg.Alt:
			return " ", true
		default:
			return "", false
		}
	}

	s := k.String()
	if grapheme.Count(s) != 1 {
		return "", false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) && !unicode.Is(unicode.Mn, r) && r != '\u200d' {
			return "", false
		}
	}
	return s, true
}
