package blocks

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/command"
	"github.com/iw2rmb/inkwell/document"
	"github.com/iw2rmb/inkwell/internal/log"
	"github.com/iw2rmb/inkwell/session"
)

// Config configures a Page.
type Config struct {
	Markup string

	// Forwarded to every block session.
	KeyMap       session.KeyMap
	HistoryLimit int
	Logger       *zap.Logger

	// OnChange receives the page markup after any block changes or a block
	// is added or removed.
	OnChange func(markup string)
}

// Page is an ordered list of block sessions with at most one focused block.
type Page struct {
	cfg Config
	log *zap.Logger

	blocks []*session.Controller
	focus  int
}

func New(cfg Config) (*Page, error) {
	p := &Page{cfg: cfg, log: log.OrNop(cfg.Logger)}
	if err := p.Load(cfg.Markup); err != nil {
		return nil, err
	}
	return p, nil
}

// Load replaces the page with one session per top-level block of markup.
// On error the page is left unchanged.
func (p *Page) Load(markup string) error {
	doc, err := document.Parse(markup)
	if err != nil {
		return fmt.Errorf("blocks: load: %w", err)
	}

	next := make([]*session.Controller, 0, doc.Len())
	for _, b := range doc.Blocks {
		s, err := p.newSession(document.Serialize(document.New(b)))
		if err != nil {
			for _, s := range next {
				s.Destroy()
			}
			return err
		}
		next = append(next, s)
	}

	for _, s := range p.blocks {
		s.Destroy()
	}
	p.blocks = next
	p.focus = 0
	p.log.Debug("page loaded", zap.Int("blocks", len(next)))
	return p.blocks[0].Focus()
}

// ApplyExternalContent replaces the page content with markup that changed
// outside the editor. When markup has as many top-level blocks as the page,
// each session receives its share through ApplyExternalContent, so unchanged
// blocks keep their cursor and history. Otherwise the page is reloaded.
func (p *Page) ApplyExternalContent(markup string) error {
	doc, err := document.Parse(markup)
	if err != nil {
		return fmt.Errorf("blocks: external content: %w", err)
	}
	if doc.Len() != p.Document().Len() {
		return p.Load(markup)
	}

	next := 0
	for i, s := range p.blocks {
		n := s.Document().Len()
		share := document.New(doc.Blocks[next : next+n]...)
		next += n
		if err := s.ApplyExternalContent(document.Serialize(share)); err != nil {
			return fmt.Errorf("blocks: external content for block %d: %w", i, err)
		}
	}
	return nil
}

func (p *Page) newSession(markup string) (*session.Controller, error) {
	var s *session.Controller
	s, err := session.New(session.Config{
		Markup:       markup,
		KeyMap:       p.cfg.KeyMap,
		HistoryLimit: p.cfg.HistoryLimit,
		Logger:       p.log,
		Bridge: session.Bridge{
			OnChange:         func(string) { p.changed() },
			OnBoundarySplit:  func() { p.split(s) },
			OnBoundaryDelete: func() { p.remove(s) },
		},
	})
	if err != nil {
		return nil, fmt.Errorf("blocks: new block: %w", err)
	}
	return s, nil
}

func (p *Page) Len() int { return len(p.blocks) }

// Block returns the session editing block i.
func (p *Page) Block(i int) (*session.Controller, bool) {
	if i < 0 || i >= len(p.blocks) {
		return nil, false
	}
	return p.blocks[i], true
}

// Current returns the focused block and its index.
func (p *Page) Current() (int, *session.Controller) {
	return p.focus, p.blocks[p.focus]
}

// Focus moves focus to block i.
func (p *Page) Focus(i int) error {
	if i < 0 || i >= len(p.blocks) {
		return fmt.Errorf("blocks: focus %d: out of range [0,%d)", i, len(p.blocks))
	}
	if i != p.focus {
		if err := p.blocks[p.focus].Blur(); err != nil {
			return err
		}
	}
	p.focus = i
	return p.blocks[i].Focus()
}

// Markup concatenates the markup of all blocks in order.
func (p *Page) Markup() string {
	var sb strings.Builder
	for _, s := range p.blocks {
		sb.WriteString(s.Markup())
	}
	return sb.String()
}

// Document returns the page as one document.
func (p *Page) Document() document.Document {
	var blocks []document.Block
	for _, s := range p.blocks {
		blocks = append(blocks, s.Document().Blocks...)
	}
	return document.New(blocks...)
}

// DispatchKey forwards a key to the focused block at its current cursor.
func (p *Page) DispatchKey(k fmt.Stringer) (session.KeyResult, error) {
	_, s := p.Current()
	return s.DispatchKey(k, s.Cursor())
}

func (p *Page) indexOf(s *session.Controller) int {
	for i, b := range p.blocks {
		if b == s {
			return i
		}
	}
	return -1
}

// split moves the content after the cursor of s into a new block inserted
// after it and focuses the new block.
func (p *Page) split(s *session.Controller) {
	i := p.indexOf(s)
	if i < 0 {
		return
	}
	doc, at := s.Document(), s.Cursor()
	end := doc.End()
	tail := command.DeleteRange(doc, document.Range{End: at}).Doc
	// A mid-block split reports the page change through the queued edit
	// event of s.
	moved := document.ComparePos(at, end) < 0
	if moved {
		if _, err := s.DeleteRange(document.Range{Start: at, End: end}); err != nil {
			p.log.Warn("split block", zap.Int("index", i), zap.Error(err))
			return
		}
	} else {
		tail = document.Empty()
	}

	next, err := p.newSession(document.Serialize(tail))
	if err != nil {
		p.log.Warn("split block", zap.Int("index", i), zap.Error(err))
		return
	}
	p.blocks = append(p.blocks, nil)
	copy(p.blocks[i+2:], p.blocks[i+1:])
	p.blocks[i+1] = next
	p.log.Debug("block split", zap.Int("index", i), zap.Int("blocks", len(p.blocks)))

	if p.focus > i {
		p.focus++
	}
	if err := p.Focus(i + 1); err != nil {
		p.log.Warn("focus new block", zap.Error(err))
	}
	if !moved {
		p.changed()
	}
}

// remove destroys s and focuses the block before it. The last remaining
// block is never removed.
func (p *Page) remove(s *session.Controller) {
	i := p.indexOf(s)
	if i < 0 || len(p.blocks) == 1 {
		return
	}

	target := i - 1
	if target < 0 {
		target = 0
	}
	focusRemoved := p.focus == i
	s.Destroy()
	p.blocks = append(p.blocks[:i], p.blocks[i+1:]...)
	if p.focus > i || (focusRemoved && p.focus > 0) {
		p.focus--
	}
	p.log.Debug("block removed", zap.Int("index", i), zap.Int("blocks", len(p.blocks)))

	if focusRemoved {
		prev := p.blocks[target]
		_ = prev.SetCursor(prev.Document().End())
		if err := p.Focus(target); err != nil {
			p.log.Warn("focus previous block", zap.Error(err))
		}
	}
	p.changed()
}

func (p *Page) changed() {
	if p.cfg.OnChange != nil {
		p.cfg.OnChange(p.Markup())
	}
}
