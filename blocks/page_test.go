package blocks

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/inkwell/document"
	"github.com/iw2rmb/inkwell/session"
)

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func blockMarkups(p *Page) []string {
	out := make([]string, 0, p.Len())
	for i := 0; i < p.Len(); i++ {
		s, _ := p.Block(i)
		out = append(out, s.Markup())
	}
	return out
}

func newPage(t *testing.T, markup string) (*Page, *[]string) {
	t.Helper()
	var changes []string
	p, err := New(Config{Markup: markup, OnChange: func(m string) { changes = append(changes, m) }})
	if err != nil {
		t.Fatalf("New(%q): %v", markup, err)
	}
	return p, &changes
}

func TestLoad_OneSessionPerBlock(t *testing.T) {
	markup := `<p><strong>a</strong></p><img src="x.png" data-flow="inline"><p>b</p>`
	p, _ := newPage(t, markup)

	want := []string{"<p><strong>a</strong></p>", `<img src="x.png" data-flow="inline">`, "<p>b</p>"}
	if diff := cmp.Diff(want, blockMarkups(p)); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
	if got := p.Markup(); got != markup {
		t.Fatalf("Markup: got %q, want %q", got, markup)
	}
	if !document.Equal(p.Document(), document.MustParse(markup)) {
		t.Fatalf("Document differs from loaded markup")
	}
	if i, s := p.Current(); i != 0 || !s.Focused() {
		t.Fatalf("Current: got %d focused=%v", i, s.Focused())
	}

	if err := p.Load("<p>x"); !errors.Is(err, document.ErrMalformedMarkup) {
		t.Fatalf("Load(malformed): got %v, want ErrMalformedMarkup", err)
	}
	if p.Len() != 3 {
		t.Fatalf("malformed Load changed page: %v", blockMarkups(p))
	}

	if err := p.Load(""); err != nil {
		t.Fatalf("Load(empty): %v", err)
	}
	if diff := cmp.Diff([]string{"<p></p>"}, blockMarkups(p)); diff != "" {
		t.Fatalf("empty page (-want +got):\n%s", diff)
	}
}

func TestBoundarySplit_InsertsBlockAfter(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		focus  int
		at     document.Pos
		want   []string
	}{
		{name: "at end", markup: "<p>a</p><p>b</p>", at: document.Pos{Offset: 1}, want: []string{"<p>a</p>", "<p></p>", "<p>b</p>"}},
		{name: "mid block moves tail", markup: "<p><em>Hello</em></p>", at: document.Pos{Offset: 2}, want: []string{"<p><em>He</em></p>", "<p><em>llo</em></p>"}},
		{name: "at start", markup: "<p>ab</p>", at: document.Pos{}, want: []string{"<p></p>", "<p>ab</p>"}},
		{name: "last block", markup: "<p>a</p><p>b</p>", focus: 1, at: document.Pos{Offset: 1}, want: []string{"<p>a</p>", "<p>b</p>", "<p></p>"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, changes := newPage(t, tc.markup)
			if err := p.Focus(tc.focus); err != nil {
				t.Fatalf("Focus: %v", err)
			}
			_, s := p.Current()
			if err := s.SetCursor(tc.at); err != nil {
				t.Fatalf("SetCursor: %v", err)
			}

			before := len(*changes)
			res, err := p.DispatchKey(enter)
			if err != nil {
				t.Fatalf("DispatchKey: %v", err)
			}
			if res.Action != session.ActionBoundarySplit {
				t.Fatalf("action: got %v", res.Action)
			}
			if diff := cmp.Diff(tc.want, blockMarkups(p)); diff != "" {
				t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
			}

			i, cur := p.Current()
			if i != tc.focus+1 || !cur.Focused() || s.Focused() {
				t.Fatalf("focus: got %d (new focused=%v, old focused=%v)", i, cur.Focused(), s.Focused())
			}
			got := (*changes)[before:]
			if diff := cmp.Diff([]string{p.Markup()}, got); diff != "" {
				t.Fatalf("OnChange calls for one split (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBoundaryDelete_RemovesEmptyBlock(t *testing.T) {
	p, changes := newPage(t, "<p>ab</p><p></p><p>c</p>")
	if err := p.Focus(1); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	removed, _ := p.Block(1)

	res, err := p.DispatchKey(backspace)
	if err != nil {
		t.Fatalf("DispatchKey: %v", err)
	}
	if res.Action != session.ActionBoundaryDelete {
		t.Fatalf("action: got %v", res.Action)
	}
	if diff := cmp.Diff([]string{"<p>ab</p>", "<p>c</p>"}, blockMarkups(p)); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
	if removed.State() != session.StateDestroyed {
		t.Fatalf("removed session state: got %v", removed.State())
	}

	i, cur := p.Current()
	if i != 0 || !cur.Focused() {
		t.Fatalf("focus: got %d focused=%v", i, cur.Focused())
	}
	if cur.Cursor() != (document.Pos{Offset: 2}) {
		t.Fatalf("cursor: got %v, want end of previous block", cur.Cursor())
	}
	if got := (*changes)[len(*changes)-1]; got != "<p>ab</p><p>c</p>" {
		t.Fatalf("OnChange: got %q", got)
	}

	// Typing goes to the newly focused block.
	if _, err := p.DispatchKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")}); err != nil {
		t.Fatalf("DispatchKey: %v", err)
	}
	if got, want := p.Markup(), "<p>ab!</p><p>c</p>"; got != want {
		t.Fatalf("Markup: got %q, want %q", got, want)
	}
}

func TestBoundaryDelete_FirstBlockFocusesNext(t *testing.T) {
	p, _ := newPage(t, "<p></p><p>b</p>")
	if _, err := p.DispatchKey(backspace); err != nil {
		t.Fatalf("DispatchKey: %v", err)
	}
	if diff := cmp.Diff([]string{"<p>b</p>"}, blockMarkups(p)); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
	if i, cur := p.Current(); i != 0 || !cur.Focused() {
		t.Fatalf("focus: got %d focused=%v", i, cur.Focused())
	}
}

func TestBoundaryDelete_KeepsLastBlock(t *testing.T) {
	p, changes := newPage(t, "")
	if _, err := p.DispatchKey(backspace); err != nil {
		t.Fatalf("DispatchKey: %v", err)
	}
	if p.Len() != 1 || len(*changes) != 0 {
		t.Fatalf("sole block removed: len %d changes %v", p.Len(), *changes)
	}
}

func TestFocus_OutOfRange(t *testing.T) {
	p, _ := newPage(t, "<p>a</p>")
	if err := p.Focus(3); err == nil {
		t.Fatalf("Focus(3): expected error")
	}
	if _, ok := p.Block(-1); ok {
		t.Fatalf("Block(-1): got ok")
	}
}

func TestApplyExternalContent_KeepsUnchangedBlocks(t *testing.T) {
	p, changes := newPage(t, "<p>a</p><p>b</p>")
	second, _ := p.Block(1)
	if _, err := second.InsertText(document.Pos{Offset: 1}, "c"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	*changes = nil

	if err := p.ApplyExternalContent("<p>x</p><p>bc</p>"); err != nil {
		t.Fatalf("ApplyExternalContent: %v", err)
	}
	if diff := cmp.Diff([]string{"<p>x</p>", "<p>bc</p>"}, blockMarkups(p)); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
	if s, _ := p.Block(1); s != second || !s.CanUndo() {
		t.Fatalf("unchanged block lost its session or history")
	}
	if got, want := len(*changes), 1; got != want {
		t.Fatalf("changes: got %d, want %d", got, want)
	}

	if err := p.ApplyExternalContent("<p>only</p>"); err != nil {
		t.Fatalf("ApplyExternalContent(fewer blocks): %v", err)
	}
	if diff := cmp.Diff([]string{"<p>only</p>"}, blockMarkups(p)); diff != "" {
		t.Fatalf("blocks after reload mismatch (-want +got):\n%s", diff)
	}

	if err := p.ApplyExternalContent("<p>x"); !errors.Is(err, document.ErrMalformedMarkup) {
		t.Fatalf("ApplyExternalContent(malformed): got %v, want ErrMalformedMarkup", err)
	}
}
