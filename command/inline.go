package command

import (
	"github.com/iw2rmb/inkwell/document"
	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// splitInlines cuts runs after n grapheme clusters. A run straddling the cut
// is duplicated into both halves with its full mark set.
func splitInlines(in []document.Text, n int) (left, right []document.Text) {
	for _, t := range in {
		l := t.Len()
		switch {
		case n >= l:
			left = append(left, t)
			n -= l
		case n <= 0:
			right = append(right, t)
		default:
			before, after := grapheme.Cut(t.Content, n)
			left = append(left, document.Text{Content: before, Marks: t.Marks})
			right = append(right, document.Text{Content: after, Marks: t.Marks})
			n = 0
		}
	}
	return left, right
}

// sliceInlines returns the runs covering clusters [start, end).
func sliceInlines(in []document.Text, start, end int) []document.Text {
	if end <= start {
		return nil
	}
	_, rest := splitInlines(in, start)
	mid, _ := splitInlines(rest, end-start)
	return mid
}

func concatInlines(parts ...[]document.Text) []document.Text {
	var out []document.Text
	for _, p := range parts {
		out = append(out, p...)
	}
	return document.NormalizeInlines(out)
}

// marksAt returns the marks a newly typed character at offset inherits: those
// of the cluster before it, or of the first cluster when offset is 0.
func marksAt(in []document.Text, offset int) document.MarkSet {
	if len(in) == 0 {
		return 0
	}
	if offset <= 0 {
		return in[0].Marks
	}
	left, _ := splitInlines(in, offset)
	left = document.NormalizeInlines(left)
	if len(left) == 0 {
		return in[0].Marks
	}
	return left[len(left)-1].Marks
}
