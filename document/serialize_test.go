package document

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSerialize_Canonical(t *testing.T) {
	cases := []struct {
		name string
		doc  Document
		want string
	}{
		{name: "empty", doc: Document{}, want: "<p></p>"},
		{
			name: "merges equal runs",
			doc:  Document{Blocks: []Block{Paragraph(Plain("He"), Plain("llo"), Plain(""))}},
			want: "<p>Hello</p>",
		},
		{
			name: "mark nesting order",
			doc:  Document{Blocks: []Block{Paragraph(Styled("x", Code, Italic, Bold))}},
			want: "<p><strong><em><code>x</code></em></strong></p>",
		},
		{
			name: "escapes text and attributes",
			doc: Document{Blocks: []Block{
				Paragraph(Plain(`<a & "b">`)),
				Image(`https://x.test/?a=1&b="2"`, true),
			}},
			want: `<p>&lt;a &amp; &#34;b&#34;&gt;</p><img src="https://x.test/?a=1&amp;b=&#34;2&#34;" data-flow="inline">`,
		},
		{
			name: "carriage return survives",
			doc:  Document{Blocks: []Block{Paragraph(Plain("a\r\nb"))}},
			want: "<p>a&#13;\nb</p>",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Serialize(tc.doc); got != tc.want {
				t.Fatalf("Serialize: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	docs := []Document{
		Empty(),
		New(Paragraph(Plain("Hello"))),
		New(Paragraph(Plain("a"), Styled("b", Bold), Styled("c", Bold, Underline), Plain("d"))),
		New(Paragraph(), Image("img/a.png", false), Paragraph(Plain("tail"))),
		New(Paragraph(Plain("line one\nline two")), Image("x.png", true)),
		New(Paragraph(Styled("  spaced  ", Strike)), Paragraph(Plain("é \U0001F600"))),
		New(Paragraph(Plain("a\r\nb & <c>"))),
	}

	for i, d := range docs {
		s := Serialize(d)
		back, err := Parse(s)
		if err != nil {
			t.Fatalf("doc %d: Parse(Serialize) %q: %v", i, s, err)
		}
		if !Equal(back, d) {
			t.Fatalf("doc %d: round trip mismatch:\n%s", i, cmp.Diff(d, back))
		}
		if again := Serialize(back); again != s {
			t.Fatalf("doc %d: serialization not idempotent: %q vs %q", i, again, s)
		}
	}
}

func TestSerialize_NoAdjacentEqualRunsAfterParse(t *testing.T) {
	d := MustParse("<p><b>a</b><strong>b</strong>c<span>d</span></p>")
	for _, b := range d.Blocks {
		for i := 1; i < len(b.Inlines); i++ {
			if b.Inlines[i-1].Marks == b.Inlines[i].Marks {
				t.Fatalf("adjacent runs %d/%d share marks %v", i-1, i, b.Inlines[i].Marks)
			}
		}
	}
	if got, want := Serialize(d), "<p><strong>ab</strong>cd</p>"; got != want {
		t.Fatalf("Serialize: got %q, want %q", got, want)
	}
}

func BenchmarkSerialize(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("<p>plain <strong>bold <em>both</em></strong> tail</p>")
	}
	d := MustParse(sb.String())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Serialize(d)
	}
}
