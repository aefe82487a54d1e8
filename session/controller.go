package session

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/document"
	"github.com/iw2rmb/inkwell/internal/log"
)

// State is the lifecycle state of a Controller.
type State uint8

const (
	StateActive State = iota
	// StateFocused is Active with input focus.
	StateFocused
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateFocused:
		return "focused"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Controller is an editing session over one document.
type Controller struct {
	id     string
	keys   KeyMap
	bridge Bridge
	log    *zap.Logger

	doc    document.Document
	cursor document.Pos
	// markup is the serialization of doc. It is only assigned from
	// document.Serialize output or a history snapshot of it.
	markup  string
	version uint64

	focused   bool
	destroyed bool

	historyLimit int
	hist         historyState

	seq      uint64
	queue    []Event
	flushing bool
}

// New parses cfg.Markup and returns an active, unfocused session.
func New(cfg Config) (*Controller, error) {
	doc, err := document.Parse(cfg.Markup)
	if err != nil {
		return nil, fmt.Errorf("session: initial markup: %w", err)
	}

	keys := cfg.KeyMap
	if keys.isZero() {
		keys = DefaultKeyMap()
	}
	id := uuid.NewString()
	c := &Controller{
		id:           id,
		keys:         keys,
		bridge:       cfg.Bridge,
		log:          log.OrNop(cfg.Logger).With(zap.String("session", id)),
		doc:          doc,
		markup:       document.Serialize(doc),
		historyLimit: cfg.historyLimit(),
	}
	c.log.Debug("session created", zap.Int("blocks", doc.Len()))
	return c, nil
}

func (c *Controller) ID() string { return c.id }

func (c *Controller) State() State {
	switch {
	case c.destroyed:
		return StateDestroyed
	case c.focused:
		return StateFocused
	default:
		return StateActive
	}
}

func (c *Controller) Focused() bool { return c.focused && !c.destroyed }

// Markup returns the serialization of the current document.
func (c *Controller) Markup() string { return c.markup }

// Document returns a copy of the current document.
func (c *Controller) Document() document.Document { return c.doc.Clone() }

func (c *Controller) Cursor() document.Pos { return c.cursor }

// Version increases by one per document change.
func (c *Controller) Version() uint64 { return c.version }

// SetCursor moves the cursor without changing the document.
func (c *Controller) SetCursor(p document.Pos) error {
	if err := c.alive(); err != nil {
		return err
	}
	c.cursor = document.ClampPos(c.doc, p)
	return nil
}

// ApplyExternalContent replaces the document with markup from the host.
// Markup equal to the current document after normalization is ignored so
// redundant host updates do not move the cursor or emit events.
func (c *Controller) ApplyExternalContent(markup string) error {
	if err := c.alive(); err != nil {
		return err
	}
	doc, err := document.Parse(markup)
	if err != nil {
		c.log.Warn("rejected external content", zap.Error(err))
		return fmt.Errorf("session: apply external content: %w", err)
	}
	next := document.Serialize(doc)
	if next == c.markup {
		return nil
	}

	c.doc = doc
	c.markup = next
	c.cursor = document.ClampPos(doc, c.cursor)
	c.hist = historyState{}
	c.version++
	c.emit(EventContentReplaced)
	return nil
}

func (c *Controller) Focus() error {
	if err := c.alive(); err != nil {
		return err
	}
	if c.focused {
		return nil
	}
	c.focused = true
	c.emit(EventFocused)
	return nil
}

func (c *Controller) Blur() error {
	if err := c.alive(); err != nil {
		return err
	}
	if !c.focused {
		return nil
	}
	c.focused = false
	c.emit(EventBlurred)
	return nil
}

// Destroy ends the session. Events still queued are dropped. Calling
// Destroy again has no effect.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.focused = false
	c.queue = nil
	c.hist = historyState{}
	c.log.Debug("session destroyed", zap.Uint64("version", c.version))
}

func (c *Controller) alive() error {
	if c.destroyed {
		return ErrSessionDestroyed
	}
	return nil
}

// emit queues an event of kind carrying the current state and delivers
// queued events in order. A callback that triggers further events only
// queues them; the outermost emit delivers them after the current one.
func (c *Controller) emit(kind EventKind) {
	c.seq++
	ev := Event{
		Seq:       c.seq,
		SessionID: c.id,
		Kind:      kind,
		Markup:    c.markup,
		Cursor:    c.cursor,
		Version:   c.version,
	}
	c.queue = append(c.queue, ev)
	if c.flushing {
		return
	}

	c.flushing = true
	defer func() { c.flushing = false }()
	for len(c.queue) > 0 && !c.destroyed {
		ev := c.queue[0]
		c.queue = c.queue[1:]
		c.log.Debug("event", zap.Stringer("kind", ev.Kind), zap.Uint64("seq", ev.Seq), zap.Uint64("version", ev.Version))
		c.bridge.deliver(ev)
	}
}
