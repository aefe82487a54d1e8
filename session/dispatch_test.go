package session

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/document"
)

type keyName string

func (k keyName) String() string { return string(k) }

func TestDispatchKey(t *testing.T) {
	cases := []struct {
		name    string
		markup  string
		key     tea.KeyMsg
		at      document.Pos
		want    string
		action  KeyAction
		changed bool
		cursor  document.Pos
		events  []EventKind
	}{
		{
			name: "enter signals split", markup: "<p>Hello</p>", key: tea.KeyMsg{Type: tea.KeyEnter}, at: pos(0, 5),
			want: "<p>Hello</p>", action: ActionBoundarySplit, cursor: pos(0, 5), events: []EventKind{EventBoundarySplit},
		},
		{
			name: "alt+enter inserts line break", markup: "<p>ab</p>", key: tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, at: pos(0, 1),
			want: "<p>a\nb</p>", action: ActionLineBreak, changed: true, cursor: pos(0, 2), events: []EventKind{EventEdited},
		},
		{
			name: "backspace deletes", markup: "<p>ab</p>", key: tea.KeyMsg{Type: tea.KeyBackspace}, at: pos(0, 2),
			want: "<p>a</p>", action: ActionDeleteBackward, changed: true, cursor: pos(0, 1), events: []EventKind{EventEdited},
		},
		{
			name: "backspace merges empty trailing block", markup: "<p>Hi</p><p></p>", key: tea.KeyMsg{Type: tea.KeyBackspace}, at: pos(1, 0),
			want: "<p>Hi</p>", action: ActionMergeWithPrevious, changed: true, cursor: pos(0, 2), events: []EventKind{EventEdited},
		},
		{
			name: "backspace on empty document signals delete", markup: "<p></p>", key: tea.KeyMsg{Type: tea.KeyBackspace}, at: pos(0, 0),
			want: "<p></p>", action: ActionBoundaryDelete, cursor: pos(0, 0), events: []EventKind{EventBoundaryDelete},
		},
		{
			name: "backspace at start of text is a no-op", markup: "<p>a</p>", key: tea.KeyMsg{Type: tea.KeyBackspace}, at: pos(0, 0),
			want: "<p>a</p>", action: ActionDeleteBackward, cursor: pos(0, 0),
		},
		{
			name: "backspace on leading image", markup: `<img src="a.png"><p>b</p>`, key: tea.KeyMsg{Type: tea.KeyBackspace}, at: pos(0, 0),
			want: "<p></p><p>b</p>", action: ActionDeleteBackward, changed: true, cursor: pos(0, 0), events: []EventKind{EventEdited},
		},
		{
			name: "backspace on image-only document keeps the block", markup: `<img src="a.png">`, key: tea.KeyMsg{Type: tea.KeyBackspace}, at: pos(0, 0),
			want: "<p></p>", action: ActionDeleteBackward, changed: true, cursor: pos(0, 0), events: []EventKind{EventEdited},
		},
		{
			name: "delete", markup: "<p>ab</p>", key: tea.KeyMsg{Type: tea.KeyDelete}, at: pos(0, 0),
			want: "<p>b</p>", action: ActionDeleteForward, changed: true, cursor: pos(0, 0), events: []EventKind{EventEdited},
		},
		{
			name: "runes type", markup: "<p><em>a</em></p>", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("xy")}, at: pos(0, 1),
			want: "<p><em>axy</em></p>", action: ActionInsertText, changed: true, cursor: pos(0, 3), events: []EventKind{EventEdited},
		},
		{
			name: "space types", markup: "<p>ab</p>", key: tea.KeyMsg{Type: tea.KeySpace}, at: pos(0, 1),
			want: "<p>a b</p>", action: ActionInsertText, changed: true, cursor: pos(0, 2), events: []EventKind{EventEdited},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newController(t, tc.markup)
			res, err := c.DispatchKey(tc.key, tc.at)
			if err != nil {
				t.Fatalf("DispatchKey: %v", err)
			}
			if !res.Handled || res.Action != tc.action || res.Changed != tc.changed {
				t.Fatalf("result: got %+v, want action %v changed %v", res, tc.action, tc.changed)
			}
			if res.Cursor != tc.cursor {
				t.Fatalf("cursor: got %v, want %v", res.Cursor, tc.cursor)
			}
			if got := c.Markup(); got != tc.want {
				t.Fatalf("markup: got %q, want %q", got, tc.want)
			}
			if !reflect.DeepEqual(rec.events, tc.events) {
				t.Fatalf("events: got %v, want %v", rec.events, tc.events)
			}
			wantChanges := 0
			if tc.changed {
				wantChanges = 1
			}
			if len(rec.changes) != wantChanges {
				t.Fatalf("OnChange calls: got %d, want %d", len(rec.changes), wantChanges)
			}
		})
	}
}

func TestDispatchKey_UnboundKeys(t *testing.T) {
	c, rec := newController(t, "<p>a</p>")
	for _, k := range []fmt.Stringer{
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true},
		tea.KeyMsg{Type: tea.KeyCtrlQ},
		tea.KeyMsg{Type: tea.KeyLeft},
		keyName("ctrl+q"),
		keyName(""),
	} {
		res, err := c.DispatchKey(k, pos(0, 1))
		if err != nil {
			t.Fatalf("DispatchKey(%q): %v", k, err)
		}
		if res.Handled {
			t.Fatalf("DispatchKey(%q): got handled %+v", k, res)
		}
	}
	if len(rec.events) != 0 {
		t.Fatalf("events: got %v", rec.events)
	}
}

func TestDispatchKey_PlainStringers(t *testing.T) {
	c, _ := newController(t, "")
	at := pos(0, 0)
	for _, k := range []keyName{"h", "é", "enter"} {
		res, err := c.DispatchKey(k, at)
		if err != nil {
			t.Fatalf("DispatchKey(%q): %v", k, err)
		}
		at = res.Cursor
	}
	if got, want := c.Markup(), "<p>hé</p>"; got != want {
		t.Fatalf("markup: got %q, want %q", got, want)
	}
}

func TestDispatchKey_UndoRedoAndCustomKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	km.Enter = key.NewBinding(key.WithKeys("ctrl+o"))
	rec := &recorder{}
	c, err := New(Config{Markup: "<p>a</p>", KeyMap: km, Bridge: rec.bridge()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if res, _ := c.DispatchKey(tea.KeyMsg{Type: tea.KeyCtrlO}, pos(0, 1)); res.Action != ActionBoundarySplit {
		t.Fatalf("custom enter: got %v", res.Action)
	}
	if res, _ := c.DispatchKey(tea.KeyMsg{Type: tea.KeyEnter}, pos(0, 1)); res.Handled {
		t.Fatalf("default enter still bound: got %+v", res)
	}

	_, _ = c.DispatchKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")}, pos(0, 1))
	res, err := c.DispatchKey(tea.KeyMsg{Type: tea.KeyCtrlZ}, c.Cursor())
	if err != nil || res.Action != ActionUndo || !res.Changed {
		t.Fatalf("undo: got %+v, %v", res, err)
	}
	if c.Markup() != "<p>a</p>" {
		t.Fatalf("after undo: got %q", c.Markup())
	}
	res, _ = c.DispatchKey(tea.KeyMsg{Type: tea.KeyCtrlY}, c.Cursor())
	if res.Action != ActionRedo || c.Markup() != "<p>ab</p>" {
		t.Fatalf("redo: got %+v %q", res, c.Markup())
	}
	res, _ = c.DispatchKey(tea.KeyMsg{Type: tea.KeyCtrlY}, c.Cursor())
	if !res.Handled || res.Changed {
		t.Fatalf("redo on empty stack: got %+v", res)
	}
}
