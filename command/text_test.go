package command

import (
	"testing"

	"github.com/iw2rmb/inkwell/document"
)

func TestInsertText(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		at     document.Pos
		text   string
		want   string
		cursor document.Pos
	}{
		{name: "inherits marks from the left", markup: "<p><strong>ab</strong>c</p>", at: pos(0, 2), text: "X", want: "<p><strong>abX</strong>c</p>", cursor: pos(0, 3)},
		{name: "at start takes first run marks", markup: "<p><em>a</em></p>", at: pos(0, 0), text: "Z", want: "<p><em>Za</em></p>", cursor: pos(0, 1)},
		{name: "into empty paragraph", markup: "<p></p>", at: pos(0, 0), text: "hi", want: "<p>hi</p>", cursor: pos(0, 2)},
		{name: "soft line break", markup: "<p>ab</p>", at: pos(0, 1), text: "\n", want: "<p>a\nb</p>", cursor: pos(0, 2)},
		{name: "after an image", markup: `<img src="a.png">`, at: pos(0, 0), text: "x", want: `<img src="a.png"><p>x</p>`, cursor: pos(1, 1)},
		{name: "counts clusters", markup: "<p>a</p>", at: pos(0, 1), text: "é\U0001F600", want: "<p>aé\U0001F600</p>", cursor: pos(0, 3)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := InsertText(document.MustParse(tc.markup), tc.at, tc.text)
			if !res.Changed {
				t.Fatalf("expected Changed=true")
			}
			if got := document.Serialize(res.Doc); got != tc.want {
				t.Fatalf("doc: got %q, want %q", got, tc.want)
			}
			if res.Cursor != tc.cursor {
				t.Fatalf("cursor: got %v, want %v", res.Cursor, tc.cursor)
			}
		})
	}

	if res := InsertText(document.Empty(), pos(0, 0), ""); res.Changed {
		t.Fatalf("empty insert: expected no-op")
	}
}

func TestInsertRun_UsesExplicitMarks(t *testing.T) {
	res := InsertRun(document.MustParse("<p>ab</p>"), pos(0, 1), document.Styled("X", document.Code))
	if got, want := document.Serialize(res.Doc), "<p>a<code>X</code>b</p>"; got != want {
		t.Fatalf("doc: got %q, want %q", got, want)
	}
}

func TestDeleteBackward(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		at     document.Pos
		want   string
		cursor document.Pos
	}{
		{name: "removes previous cluster", markup: "<p>abc</p>", at: pos(0, 2), want: "<p>ac</p>", cursor: pos(0, 1)},
		{name: "whole grapheme", markup: "<p>éx</p>", at: pos(0, 1), want: "<p>x</p>", cursor: pos(0, 0)},
		{name: "merges at block start", markup: "<p>Hi</p><p></p>", at: pos(1, 0), want: "<p>Hi</p>", cursor: pos(0, 2)},
		{name: "first image becomes empty paragraph", markup: `<img src="a.png"><p>b</p>`, at: pos(0, 0), want: "<p></p><p>b</p>", cursor: pos(0, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := DeleteBackward(document.MustParse(tc.markup), tc.at)
			if !res.Changed {
				t.Fatalf("expected Changed=true")
			}
			if got := document.Serialize(res.Doc); got != tc.want {
				t.Fatalf("doc: got %q, want %q", got, tc.want)
			}
			if res.Cursor != tc.cursor {
				t.Fatalf("cursor: got %v, want %v", res.Cursor, tc.cursor)
			}
		})
	}

	if res := DeleteBackward(document.MustParse("<p>a</p>"), pos(0, 0)); res.Changed {
		t.Fatalf("backspace at document start: expected no-op")
	}
}

func TestDeleteForward(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		at     document.Pos
		want   string
		cursor document.Pos
	}{
		{name: "removes next cluster", markup: "<p>abc</p>", at: pos(0, 1), want: "<p>ac</p>", cursor: pos(0, 1)},
		{name: "pulls next paragraph", markup: "<p>ab</p><p>cd</p>", at: pos(0, 2), want: "<p>abcd</p>", cursor: pos(0, 2)},
		{name: "removes trailing image", markup: `<p>a</p><img src="x.png">`, at: pos(1, 0), want: "<p>a</p>", cursor: pos(0, 1)},
		{name: "removes inner image", markup: `<p>a</p><img src="x.png"><p>b</p>`, at: pos(1, 0), want: "<p>a</p><p>b</p>", cursor: pos(1, 0)},
		{name: "only image", markup: `<img src="x.png">`, at: pos(0, 0), want: "<p></p>", cursor: pos(0, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := DeleteForward(document.MustParse(tc.markup), tc.at)
			if !res.Changed {
				t.Fatalf("expected Changed=true")
			}
			if got := document.Serialize(res.Doc); got != tc.want {
				t.Fatalf("doc: got %q, want %q", got, tc.want)
			}
			if res.Cursor != tc.cursor {
				t.Fatalf("cursor: got %v, want %v", res.Cursor, tc.cursor)
			}
		})
	}

	if res := DeleteForward(document.MustParse("<p>a</p>"), pos(0, 1)); res.Changed {
		t.Fatalf("delete at document end: expected no-op")
	}
}

func TestDeleteRange(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		r      document.Range
		want   string
	}{
		{name: "within paragraph", markup: "<p>abcdef</p>", r: rng(0, 1, 0, 4), want: "<p>aef</p>"},
		{name: "across image", markup: `<p>abc</p><img src="x.png"><p>def</p>`, r: rng(0, 1, 2, 2), want: "<p>af</p>"},
		{name: "image at exclusive end kept", markup: `<p>abc</p><img src="x.png">`, r: rng(0, 1, 1, 0), want: `<p>a</p><img src="x.png">`},
		{name: "keeps marks of both ends", markup: "<p><b>ab</b></p><p><i>cd</i></p>", r: rng(0, 1, 1, 1), want: "<p><strong>a</strong><em>d</em></p>"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := DeleteRange(document.MustParse(tc.markup), tc.r)
			if got := document.Serialize(res.Doc); got != tc.want {
				t.Fatalf("doc: got %q, want %q", got, tc.want)
			}
			if res.Cursor != document.NormalizeRange(tc.r).Start {
				t.Fatalf("cursor: got %v, want %v", res.Cursor, tc.r.Start)
			}
		})
	}
}
