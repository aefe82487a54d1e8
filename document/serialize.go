package document

import (
	"strings"

	"golang.org/x/net/html"
)

// Serialize encodes d as markup. Output is deterministic and is valid input
// to Parse: Parse(Serialize(d)) is structurally equal to d.
func Serialize(d Document) string {
	d = Normalize(d)
	var sb strings.Builder
	for _, b := range d.Blocks {
		writeBlock(&sb, b)
	}
	return sb.String()
}

// canonical tag per mark, outermost first
var markOrder = [markCount]string{
	Bold:      "strong",
	Italic:    "em",
	Underline: "u",
	Strike:    "s",
	Code:      "code",
}

func writeBlock(sb *strings.Builder, b Block) {
	if b.Kind == KindImage {
		sb.WriteString(`<img src="`)
		sb.WriteString(html.EscapeString(b.Src))
		sb.WriteByte('"')
		if b.InlineFlow {
			sb.WriteString(` data-flow="inline"`)
		}
		sb.WriteByte('>')
		return
	}

	sb.WriteString("<p>")
	for _, t := range b.Inlines {
		marks := t.Marks.List()
		for _, m := range marks {
			sb.WriteString("<" + markOrder[m] + ">")
		}
		sb.WriteString(html.EscapeString(t.Content))
		for i := len(marks) - 1; i >= 0; i-- {
			sb.WriteString("</" + markOrder[marks[i]] + ">")
		}
	}
	sb.WriteString("</p>")
}
