package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func FuzzParseSerializeRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		"<p>Hello</p>",
		"<p>Hi</p><p></p>",
		"<p><strong>a<em>b</em></strong>c</p>",
		`<p>x<img src="a.png">y</p>`,
		`<img src="https://x.test/i.png" data-flow="inline">`,
		"<h1>t</h1>loose<div>d</div>",
		"<p>a &amp; b &#13;\n</p>",
		"<p>unicode-\U0001F468‍\U0001F469‍\U0001F467</p>",
		"<p><b>x</i></p>",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, markup string) {
		d, err := Parse(markup)
		if err != nil {
			return
		}
		if len(d.Blocks) == 0 {
			t.Fatalf("Parse(%q) produced no blocks", markup)
		}

		s := Serialize(d)
		back, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(Serialize(%q)) = %q: %v", markup, s, err)
		}
		if !Equal(back, d) {
			t.Fatalf("round trip of %q mismatch:\n%s", markup, cmp.Diff(d, back))
		}
		if again := Serialize(back); again != s {
			t.Fatalf("normalization not idempotent for %q: %q vs %q", markup, again, s)
		}
	})
}
