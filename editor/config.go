package editor

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/blocks"
	"github.com/iw2rmb/inkwell/session"
)

// Config configures the editor Model.
type Config struct {
	// Page to edit. When nil, New creates one from Markup.
	Page   *blocks.Page
	Markup string

	// Used only when New creates the page.
	SessionKeyMap session.KeyMap
	HistoryLimit  int
	Logger        *zap.Logger

	KeyMap KeyMap
	// The zero Style renders plain text. See DefaultStyle.
	Style Style
	// ShowBlockNums prefixes the first row of every block with its number.
	ShowBlockNums bool
	ReadOnly      bool

	// Optional.
	Clipboard Clipboard

	// OnChange is called after an update that changed the page markup, the
	// cursor or the selection.
	OnChange func(ChangeEvent)
}
