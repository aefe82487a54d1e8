package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Tag vocabulary. The first spelling of each mark is the one Serialize emits.
var markTags = map[string]Mark{
	"strong": Bold,
	"b":      Bold,
	"em":     Italic,
	"i":      Italic,
	"u":      Underline,
	"s":      Strike,
	"del":    Strike,
	"strike": Strike,
	"code":   Code,
}

// Unsupported block-level elements end an implicit paragraph.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"figure": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "li": true,
	"main": true, "nav": true, "ol": true, "pre": true, "section": true,
	"table": true, "td": true, "th": true, "tr": true, "ul": true,
}

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Content of these elements is not document text.
var droppedContentTags = map[string]bool{"script": true, "style": true}

// The tokenizer reads the content of these elements as raw text even when
// the start tag is written self-closing, so a matching end tag follows.
var rawTextTags = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "noscript": true,
	"plaintext": true, "script": true, "style": true, "textarea": true,
	"title": true, "xmp": true,
}

const (
	paragraphTag  = "p"
	imageTag      = "img"
	srcAttr       = "src"
	flowAttr      = "data-flow"
	inlineFlowVal = "inline"
)

type openElement struct {
	name   string
	offset int
	mark   Mark
	isMark bool
}

type parser struct {
	blocks []Block

	inPara  bool
	inlines []Text
	// paraDepth is the stack index of the open <p>, or -1.
	paraDepth int

	stack []openElement
	skip  int
}

// Parse decodes markup into a normalized Document.
//
// Unsupported tags are dropped while their text is kept as plain text.
// Parse fails with an error matching ErrMalformedMarkup when the input
// cannot be decomposed into paragraphs, marks and images.
func Parse(markup string) (Document, error) {
	p := &parser{paraDepth: -1}
	z := html.NewTokenizer(strings.NewReader(markup))

	offset := 0
	for {
		tt := z.Next()
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return Document{}, &ParseError{Offset: start, Reason: "tokenizer failure", Err: err}
			}
			return p.finish()
		case html.TextToken:
			p.text(z.Token().Data)
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if err := p.startTag(tok, tt == html.SelfClosingTagToken, start); err != nil {
				return Document{}, err
			}
		case html.EndTagToken:
			if err := p.endTag(z.Token().Data, start); err != nil {
				return Document{}, err
			}
		}
	}
}

// MustParse is like Parse but panics on malformed markup. It is intended for
// tests and literals.
func MustParse(markup string) Document {
	d, err := Parse(markup)
	if err != nil {
		panic(fmt.Sprintf("document: MustParse(%q): %v", markup, err))
	}
	return d
}

func (p *parser) marks() MarkSet {
	var s MarkSet
	for _, el := range p.stack {
		if el.isMark {
			s = s.With(el.mark)
		}
	}
	return s
}

func (p *parser) text(data string) {
	if p.skip > 0 || data == "" {
		return
	}
	if !p.inPara {
		if isHTMLSpace(data) {
			return
		}
		p.inPara = true
	}
	p.inlines = append(p.inlines, Text{Content: data, Marks: p.marks()})
}

func (p *parser) closeParagraph() {
	if !p.inPara {
		return
	}
	p.blocks = append(p.blocks, Block{Kind: KindParagraph, Inlines: p.inlines})
	p.inlines = nil
	p.inPara = false
}

func (p *parser) closeImplicitParagraph() {
	if p.paraDepth < 0 {
		p.closeParagraph()
	}
}

func (p *parser) startTag(tok html.Token, selfClosing bool, offset int) error {
	name := tok.Data
	if rawTextTags[name] {
		selfClosing = false
	}
	if p.skip > 0 {
		if droppedContentTags[name] && !selfClosing {
			p.push(openElement{name: name, offset: offset})
			p.skip++
		}
		return nil
	}

	switch {
	case name == paragraphTag:
		if p.paraDepth >= 0 {
			return &ParseError{Offset: offset, Reason: "paragraph nested inside paragraph"}
		}
		p.closeParagraph()
		if selfClosing {
			p.blocks = append(p.blocks, Paragraph())
			return nil
		}
		p.paraDepth = len(p.stack)
		p.push(openElement{name: name, offset: offset})
		p.inPara = true
		return nil

	case name == imageTag:
		return p.image(tok, offset)

	case voidTags[name], selfClosing:
		return nil

	case droppedContentTags[name]:
		p.push(openElement{name: name, offset: offset})
		p.skip++
		return nil
	}

	if m, ok := markTags[name]; ok {
		p.push(openElement{name: name, offset: offset, mark: m, isMark: true})
		return nil
	}
	if blockTags[name] {
		p.closeImplicitParagraph()
	}
	p.push(openElement{name: name, offset: offset})
	return nil
}

func (p *parser) image(tok html.Token, offset int) error {
	src, inline := "", false
	for _, a := range tok.Attr {
		switch a.Key {
		case srcAttr:
			src = a.Val
		case flowAttr:
			inline = strings.EqualFold(strings.TrimSpace(a.Val), inlineFlowVal)
		}
	}
	if strings.TrimSpace(src) == "" {
		return &ParseError{Offset: offset, Reason: "image without src"}
	}

	if !p.inPara {
		p.blocks = append(p.blocks, Image(src, inline))
		return nil
	}

	// An image inside a paragraph splits it in two.
	explicit := p.paraDepth >= 0
	p.closeParagraph()
	p.blocks = append(p.blocks, Image(src, true))
	if explicit {
		p.inPara = true
	}
	return nil
}

func (p *parser) endTag(name string, offset int) error {
	if voidTags[name] {
		return nil
	}
	n := len(p.stack)
	if n == 0 {
		return &ParseError{Offset: offset, Reason: fmt.Sprintf("unexpected </%s>", name)}
	}
	top := p.stack[n-1]
	if top.name != name {
		return &ParseError{Offset: offset, Reason: fmt.Sprintf("</%s> closes <%s>", name, top.name)}
	}
	p.stack = p.stack[:n-1]

	switch {
	case p.skip > 0:
		if droppedContentTags[name] {
			p.skip--
		}
	case name == paragraphTag && p.paraDepth == n-1:
		p.closeParagraph()
		p.paraDepth = -1
	case blockTags[name]:
		p.closeImplicitParagraph()
	}
	return nil
}

func (p *parser) push(el openElement) {
	p.stack = append(p.stack, el)
}

func (p *parser) finish() (Document, error) {
	if n := len(p.stack); n > 0 {
		el := p.stack[n-1]
		return Document{}, &ParseError{Offset: el.offset, Reason: fmt.Sprintf("unclosed <%s>", el.name)}
	}
	p.closeParagraph()
	return Normalize(Document{Blocks: p.blocks}), nil
}

func isHTMLSpace(s string) bool {
	return strings.Trim(s, " \t\n\f\r") == ""
}
