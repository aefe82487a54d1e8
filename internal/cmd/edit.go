package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/internal/config"
	"github.com/iw2rmb/inkwell/internal/log"
	"github.com/iw2rmb/inkwell/internal/watch"
	"github.com/iw2rmb/inkwell/session"
)

func editCmd(opts *options) *cobra.Command {
	var (
		watchFile bool
		readOnly  bool
		numbers   bool
	)

	cmd := cobra.Command{
		Use:   "edit FILE",
		Short: "Edit a markup file in the terminal",
		Long: `Open FILE in a block editor. Enter starts a new block, alt+enter inserts a
line break, shift+arrows select and ctrl+b toggles bold on the selection.
ctrl+s saves and ctrl+q quits. A missing FILE is created on first save.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newEditApp(opts.cfg, args[0], readOnly, numbers)
			if err != nil {
				return err
			}
			if watchFile {
				w, err := watch.New(args[0], watch.WithLogger(log.Get()))
				if err != nil {
					return err
				}
				defer func() { _ = w.Close() }()
				app.watcher = w
			}

			p := tea.NewProgram(
				app,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&watchFile, "watch", false, "Reload FILE when it changes on disk.")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Open FILE without allowing edits.")
	cmd.Flags().BoolVarP(&numbers, "numbers", "n", false, "Show block numbers.")

	return &cmd
}

type appKeys struct {
	Save key.Binding
	Quit key.Binding
}

type fileChangedMsg struct{ content string }

type watchErrMsg struct{ err error }

// editApp hosts the editor for one file.
type editApp struct {
	path    string
	editor  editor.Model
	keys    appKeys
	watcher *watch.Watcher
	log     *zap.Logger

	// Markup as last read from or written to path.
	saved  string
	status string

	statusStyle lipgloss.Style
}

func newEditApp(cfg config.Config, path string, readOnly, numbers bool) (editApp, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return editApp{}, fmt.Errorf("reading %s: %w", path, err)
	}

	e, err := editor.New(editor.Config{
		Markup:        string(data),
		SessionKeyMap: sessionKeys(cfg),
		HistoryLimit:  cfg.HistoryLimit,
		Logger:        log.Get(),
		KeyMap:        editorKeys(cfg),
		Style:         editorStyle(cfg.Style),
		ShowBlockNums: numbers,
		ReadOnly:      readOnly,
		Clipboard:     &systemClipboard{},
	})
	if err != nil {
		return editApp{}, fmt.Errorf("%s: %w", path, err)
	}

	return editApp{
		path:        path,
		editor:      e,
		keys:        appKeyMap(cfg),
		log:         log.Get(),
		saved:       e.Page().Markup(),
		statusStyle: lipgloss.NewStyle().Faint(true),
	}, nil
}

func (a editApp) Init() tea.Cmd { return waitForChange(a.watcher) }

func (a editApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.editor = a.editor.SetSize(msg.Width, msg.Height-1)
		return a, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Save):
			a.save()
			return a, nil
		}
	case fileChangedMsg:
		a.reload(msg.content)
		return a, waitForChange(a.watcher)
	case watchErrMsg:
		a.status = "watch: " + msg.err.Error()
		return a, waitForChange(a.watcher)
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a editApp) View() string {
	line := filepath.Base(a.path)
	if a.modified() {
		line += " [+]"
	}
	if a.status != "" {
		line += "  " + a.status
	}
	return a.editor.View() + "\n" + a.statusStyle.Render(line)
}

func (a editApp) modified() bool { return a.editor.Page().Markup() != a.saved }

func (a *editApp) save() {
	markup := a.editor.Page().Markup()
	if a.watcher != nil {
		a.watcher.Expect([]byte(markup))
	}
	if err := writeFile(a.path, []byte(markup)); err != nil {
		a.log.Warn("save failed", zap.String("path", a.path), zap.Error(err))
		a.status = err.Error()
		return
	}
	a.saved = markup
	a.status = "saved"
	a.log.Debug("saved", zap.String("path", a.path), zap.Int("bytes", len(markup)))
}

// reload applies content written by another process. Unsaved edits win:
// the change is reported and the next save overwrites it.
func (a *editApp) reload(content string) {
	if a.modified() {
		a.status = "changed on disk; save to overwrite"
		return
	}
	e, err := a.editor.Reload(content)
	if err != nil {
		a.log.Warn("external change rejected", zap.String("path", a.path), zap.Error(err))
		a.status = "changed on disk: " + err.Error()
		return
	}
	a.editor = e
	a.saved = e.Page().Markup()
	a.status = "reloaded"
}

func waitForChange(w *watch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case c, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return fileChangedMsg{content: string(c.Content)}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

func appKeyMap(cfg config.Config) appKeys {
	return appKeys{
		Save: cfg.Bind(config.ActionSave, key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save"))),
		Quit: cfg.Bind(config.ActionQuit, key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit"))),
	}
}

func sessionKeys(cfg config.Config) session.KeyMap {
	km := session.DefaultKeyMap()
	km.Enter = cfg.Bind(config.ActionEnter, km.Enter)
	km.NewlineEnter = cfg.Bind(config.ActionNewline, km.NewlineEnter)
	km.Backspace = cfg.Bind(config.ActionBackspace, km.Backspace)
	km.Delete = cfg.Bind(config.ActionDelete, km.Delete)
	km.Undo = cfg.Bind(config.ActionUndo, km.Undo)
	km.Redo = cfg.Bind(config.ActionRedo, km.Redo)
	return km
}

func editorKeys(cfg config.Config) editor.KeyMap {
	km := editor.DefaultKeyMap()
	km.Backspace = cfg.Bind(config.ActionBackspace, km.Backspace)
	km.Delete = cfg.Bind(config.ActionDelete, km.Delete)
	km.Bold = cfg.Bind(config.ActionBold, km.Bold)
	km.Italic = cfg.Bind(config.ActionItalic, km.Italic)
	km.Underline = cfg.Bind(config.ActionUnderline, km.Underline)
	km.Strike = cfg.Bind(config.ActionStrike, km.Strike)
	km.Code = cfg.Bind(config.ActionCode, km.Code)
	return km
}

// editorStyle applies configured colors over editor.DefaultStyle.
func editorStyle(s config.Style) editor.Style {
	st := editor.DefaultStyle()
	if s.Cursor != "" {
		st.Cursor = lipgloss.NewStyle().Background(lipgloss.Color(s.Cursor))
	}
	if s.Selection != "" {
		st.Selection = st.Selection.Background(lipgloss.Color(s.Selection))
	}
	if s.Code != "" {
		st.Code = st.Code.Foreground(lipgloss.Color(s.Code))
	}
	if s.Image != "" {
		st.Image = st.Image.Foreground(lipgloss.Color(s.Image))
	}
	if s.Gutter != "" {
		st.Gutter = st.Gutter.Foreground(lipgloss.Color(s.Gutter))
	}
	return st
}
