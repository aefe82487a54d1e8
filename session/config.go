package session

import "go.uber.org/zap"

// DefaultHistoryLimit is the number of undo steps kept when Config leaves
// HistoryLimit at zero.
const DefaultHistoryLimit = 1000

// Config configures a Controller.
type Config struct {
	// Initial markup. Empty markup yields a document with one empty
	// paragraph.
	Markup string

	// KeyMap drives DispatchKey. The zero value selects DefaultKeyMap.
	KeyMap KeyMap

	// Undo depth. Zero selects DefaultHistoryLimit; a negative value
	// disables history.
	HistoryLimit int

	// Optional. Nil disables logging.
	Logger *zap.Logger

	Bridge Bridge
}

func (c Config) historyLimit() int {
	if c.HistoryLimit == 0 {
		return DefaultHistoryLimit
	}
	return c.HistoryLimit
}
