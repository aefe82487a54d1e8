package cmd

import "github.com/atotto/clipboard"

// systemClipboard uses the OS clipboard and falls back to an in-process
// buffer where none is available (no display, missing xclip).
type systemClipboard struct {
	mem string
}

func (c *systemClipboard) ReadText() (string, error) {
	if !clipboard.Unsupported {
		if s, err := clipboard.ReadAll(); err == nil {
			return s, nil
		}
	}
	return c.mem, nil
}

func (c *systemClipboard) WriteText(s string) error {
	c.mem = s
	if clipboard.Unsupported {
		return nil
	}
	_ = clipboard.WriteAll(s)
	return nil
}
