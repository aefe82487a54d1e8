package document

import (
	"strings"

	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// Text is a run of characters sharing one mark set. It is the only inline
// node kind.
type Text struct {
	Content string
	Marks   MarkSet
}

// Plain returns an unmarked text run.
func Plain(s string) Text { return Text{Content: s} }

// Styled returns a text run carrying marks.
func Styled(s string, marks ...Mark) Text {
	return Text{Content: s, Marks: NewMarkSet(marks...)}
}

// Len returns the run length in grapheme clusters.
func (t Text) Len() int { return grapheme.Count(t.Content) }

// BlockKind tags the Block variant.
type BlockKind uint8

const (
	KindParagraph BlockKind = iota
	KindImage
)

func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Block is a top-level document node.
//
// Paragraph blocks use Inlines. Image blocks use Src and InlineFlow and never
// carry inlines.
type Block struct {
	Kind    BlockKind
	Inlines []Text

	Src        string
	InlineFlow bool
}

// Paragraph builds a paragraph block from runs.
func Paragraph(inlines ...Text) Block {
	return Block{Kind: KindParagraph, Inlines: append([]Text(nil), inlines...)}
}

// Image builds an image block.
func Image(src string, inlineFlow bool) Block {
	return Block{Kind: KindImage, Src: src, InlineFlow: inlineFlow}
}

func (b Block) IsParagraph() bool { return b.Kind == KindParagraph }

func (b Block) IsImage() bool { return b.Kind == KindImage }

// Text returns the concatenated paragraph text. Images have no text.
func (b Block) Text() string {
	if b.Kind != KindParagraph {
		return ""
	}
	if len(b.Inlines) == 1 {
		return b.Inlines[0].Content
	}
	var sb strings.Builder
	for _, t := range b.Inlines {
		sb.WriteString(t.Content)
	}
	return sb.String()
}

// Len returns the number of cursor stops past offset 0: the paragraph length
// in grapheme clusters, or 0 for an image.
func (b Block) Len() int {
	if b.Kind != KindParagraph {
		return 0
	}
	n := 0
	for _, t := range b.Inlines {
		n += t.Len()
	}
	return n
}

// Clone returns a block that shares no slices with b.
func (b Block) Clone() Block {
	out := b
	if b.Inlines != nil {
		out.Inlines = append([]Text(nil), b.Inlines...)
	}
	return out
}

// Document is an ordered sequence of top-level blocks.
//
// Use New or Normalize to obtain a document that satisfies the model
// invariants: at least one block, no empty runs, no adjacent runs with equal
// mark sets.
type Document struct {
	Blocks []Block
}

// New builds a normalized document from blocks. With no blocks it returns
// the empty document (one empty paragraph).
func New(blocks ...Block) Document {
	return Normalize(Document{Blocks: blocks})
}

// Empty returns the empty document.
func Empty() Document {
	return Document{Blocks: []Block{Paragraph()}}
}

// Len returns the number of top-level blocks.
func (d Document) Len() int { return len(d.Blocks) }

// Block returns block i, or false when i is out of range.
func (d Document) Block(i int) (Block, bool) {
	if i < 0 || i >= len(d.Blocks) {
		return Block{}, false
	}
	return d.Blocks[i], true
}

// Text returns the text content of all paragraphs joined by '\n'.
func (d Document) Text() string {
	var sb strings.Builder
	first := true
	for _, b := range d.Blocks {
		if !b.IsParagraph() {
			continue
		}
		if !first {
			sb.WriteByte('\n')
		}
		first = false
		sb.WriteString(b.Text())
	}
	return sb.String()
}

// IsEmpty reports whether the document holds no text and no images.
func (d Document) IsEmpty() bool {
	for _, b := range d.Blocks {
		if b.IsImage() || b.Text() != "" {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		out.Blocks[i] = b.Clone()
	}
	return out
}
