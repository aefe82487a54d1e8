package document

import "strings"

// Mark is a formatting attribute applied to a run of text.
type Mark uint8

const (
	Bold Mark = iota
	Italic
	Underline
	Strike
	Code

	markCount
)

var markNames = [markCount]string{"bold", "italic", "underline", "strike", "code"}

func (m Mark) String() string {
	if m >= markCount {
		return "unknown"
	}
	return markNames[m]
}

// Valid reports whether m is one of the known marks.
func (m Mark) Valid() bool { return m < markCount }

// MarkSet is an unordered set of marks. The zero value is the empty set and
// two sets are equal exactly when they hold the same marks.
type MarkSet uint8

// NewMarkSet builds a set from marks; unknown marks are ignored.
func NewMarkSet(marks ...Mark) MarkSet {
	var s MarkSet
	for _, m := range marks {
		s = s.With(m)
	}
	return s
}

func (s MarkSet) Has(m Mark) bool {
	return m.Valid() && s&(1<<m) != 0
}

func (s MarkSet) With(m Mark) MarkSet {
	if !m.Valid() {
		return s
	}
	return s | 1<<m
}

func (s MarkSet) Without(m Mark) MarkSet {
	if !m.Valid() {
		return s
	}
	return s &^ (1 << m)
}

func (s MarkSet) IsEmpty() bool { return s == 0 }

// List returns the marks in canonical order.
func (s MarkSet) List() []Mark {
	var out []Mark
	for m := Mark(0); m < markCount; m++ {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s MarkSet) String() string {
	names := make([]string, 0, markCount)
	for _, m := range s.List() {
		names = append(names, m.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
