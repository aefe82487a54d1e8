package command

import (
	"fmt"

	"github.com/iw2rmb/inkwell/document"
)

// Kind identifies an editing intent.
type Kind uint8

const (
	KindSplitBlock Kind = iota
	KindMergeWithPrevious
	KindToggleMark
	KindInsertImage
	KindInsertText
	KindDeleteBackward
	KindDeleteForward
	KindDeleteRange
)

var kindNames = map[Kind]string{
	KindSplitBlock:        "split-block",
	KindMergeWithPrevious: "merge-with-previous",
	KindToggleMark:        "toggle-mark",
	KindInsertImage:       "insert-image",
	KindInsertText:        "insert-text",
	KindDeleteBackward:    "delete-backward",
	KindDeleteForward:     "delete-forward",
	KindDeleteRange:       "delete-range",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Intent is a typed editing request. Which fields are read depends on Kind:
// At for cursor commands, Range and Mark for KindToggleMark and
// KindDeleteRange, Text for KindInsertText, Src for KindInsertImage.
type Intent struct {
	Kind  Kind
	At    document.Pos
	Range document.Range
	Mark  document.Mark
	Text  string
	Src   string
}

// Apply runs the command named by in against doc.
func Apply(doc document.Document, in Intent) (Result, error) {
	switch in.Kind {
	case KindSplitBlock:
		return SplitBlock(doc, in.At), nil
	case KindMergeWithPrevious:
		return MergeWithPrevious(doc, in.At), nil
	case KindToggleMark:
		return ToggleMark(doc, in.Range, in.Mark), nil
	case KindInsertImage:
		return InsertImage(doc, in.At, in.Src)
	case KindInsertText:
		return InsertText(doc, in.At, in.Text), nil
	case KindDeleteBackward:
		return DeleteBackward(doc, in.At), nil
	case KindDeleteForward:
		return DeleteForward(doc, in.At), nil
	case KindDeleteRange:
		return DeleteRange(doc, in.Range), nil
	default:
		return noop(doc, in.At), fmt.Errorf("command: unknown intent %v", in.Kind)
	}
}
