package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/blocks"
	"github.com/iw2rmb/inkwell/document"
	"github.com/iw2rmb/inkwell/internal/log"
	"github.com/iw2rmb/inkwell/session"
)

type selectionState struct {
	active bool
	anchor Caret
}

// Model is a Bubble Tea component that renders and edits a blocks.Page.
type Model struct {
	cfg  Config
	page *blocks.Page
	log  *zap.Logger

	focused bool
	sel     selectionState

	viewport  viewport.Model
	layout    []pageBlock
	cursorRow int

	version    uint64
	lastMarkup string
	lastCaret  Caret
	lastSel    selectionState
}

// New returns a focused editor. It fails only when the page has to be
// created from malformed Config.Markup.
func New(cfg Config) (Model, error) {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	page := cfg.Page
	if page == nil {
		var err error
		page, err = blocks.New(blocks.Config{
			Markup:       cfg.Markup,
			KeyMap:       cfg.SessionKeyMap,
			HistoryLimit: cfg.HistoryLimit,
			Logger:       cfg.Logger,
		})
		if err != nil {
			return Model{}, err
		}
	}

	m := Model{
		cfg:      cfg,
		page:     page,
		log:      log.OrNop(cfg.Logger),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.lastMarkup = page.Markup()
	m.lastCaret = m.caret()
	m.rebuildContent()
	return m, nil
}

func (m Model) Page() *blocks.Page { return m.page }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// Caret returns the cursor position on the page.
func (m Model) Caret() Caret { return m.caret() }

func (m Model) caret() Caret {
	i, s := m.page.Current()
	return Caret{Session: i, Pos: s.Cursor()}
}

// Selection returns the normalized selection inside the focused session.
func (m Model) Selection() (document.Range, bool) {
	c := m.caret()
	if !m.sel.active || m.sel.anchor.Session != c.Session || m.sel.anchor.Pos == c.Pos {
		return document.Range{}, false
	}
	return document.NormalizeRange(document.Range{Start: m.sel.anchor.Pos, End: c.Pos}), true
}

// SetCaret moves the cursor, focusing another session when needed, and
// clears the selection.
func (m Model) SetCaret(c Caret) Model {
	m.sel = selectionState{}
	m.setCaret(c)
	m.sync()
	return m
}

func (m *Model) setCaret(c Caret) {
	if i, _ := m.page.Current(); i != c.Session {
		if err := m.page.Focus(c.Session); err != nil {
			return
		}
	}
	_, s := m.page.Current()
	if err := s.SetCursor(c.Pos); err != nil {
		m.log.Debug("set cursor", zap.Error(err))
	}
}

// InsertImage inserts an image at the cursor of the focused session.
func (m Model) InsertImage(src string) (Model, error) {
	if m.cfg.ReadOnly {
		return m, nil
	}
	_, s := m.page.Current()
	if _, err := s.InsertImage(s.Cursor(), src); err != nil {
		return m, err
	}
	m.sel = selectionState{}
	m.sync()
	return m, nil
}

// Reload replaces the page content, for example after the file changed
// on disk. The cursor is kept where the page allows it.
func (m Model) Reload(markup string) (Model, error) {
	c := m.caret()
	if err := m.page.ApplyExternalContent(markup); err != nil {
		return m, err
	}
	m.sel = selectionState{}
	if c.Session < m.page.Len() {
		m.setCaret(c)
	}
	m.sync()
	return m, nil
}

func (m Model) current() *session.Controller {
	_, s := m.page.Current()
	return s
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m = m.updateKey(msg)
		m.sync()
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		// Rebuild content in case the host mutated the page outside of the editor.
		m.sync()
		return m, cmd
	default:
		m.sync()
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

// sync re-renders after a change to the page, the cursor or the selection
// and reports it through OnChange.
func (m *Model) sync() {
	markup := m.page.Markup()
	c := m.caret()
	if markup == m.lastMarkup && c == m.lastCaret && m.sel == m.lastSel {
		return
	}
	m.lastMarkup, m.lastCaret, m.lastSel = markup, c, m.sel
	m.version++
	m.rebuildContent()
	m.followCursor()
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(m.buildChangeEvent())
	}
}

func (m *Model) rebuildContent() {
	m.layout = layoutPage(m.page)
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if m.cursorRow < y {
		m.viewport.SetYOffset(m.cursorRow)
		return
	}
	if m.cursorRow >= y+h {
		m.viewport.SetYOffset(m.cursorRow - h + 1)
	}
}
