package session

import "github.com/iw2rmb/inkwell/document"

type snapshot struct {
	doc    document.Document
	markup string
	cursor document.Pos
}

type historyState struct {
	undo []snapshot
	redo []snapshot
}

func (c *Controller) snapshot() snapshot {
	return snapshot{doc: c.doc, markup: c.markup, cursor: c.cursor}
}

func (c *Controller) restore(s snapshot) {
	c.doc = s.doc
	c.markup = s.markup
	c.cursor = document.ClampPos(c.doc, s.cursor)
}

func pushLimited(stack []snapshot, s snapshot, limit int) []snapshot {
	stack = append(stack, s)
	if len(stack) > limit {
		stack = stack[len(stack)-limit:]
	}
	return stack
}

func (c *Controller) recordUndo(prev snapshot) {
	limit := c.historyLimit
	if limit <= 0 {
		return
	}
	c.hist.undo = pushLimited(c.hist.undo, prev, limit)
	c.hist.redo = nil
}

// CanUndo reports whether Undo would change the document.
func (c *Controller) CanUndo() bool { return len(c.hist.undo) > 0 }

func (c *Controller) CanRedo() bool { return len(c.hist.redo) > 0 }

// Undo restores the document before the last local edit. It reports false
// when there is nothing to undo.
func (c *Controller) Undo() (bool, error) {
	if err := c.alive(); err != nil {
		return false, err
	}
	if len(c.hist.undo) == 0 {
		return false, nil
	}

	i := len(c.hist.undo) - 1
	prev := c.hist.undo[i]
	c.hist.undo = c.hist.undo[:i]
	c.hist.redo = append(c.hist.redo, c.snapshot())

	c.restore(prev)
	c.version++
	c.emit(EventEdited)
	return true, nil
}

// Redo reapplies the last undone edit.
func (c *Controller) Redo() (bool, error) {
	if err := c.alive(); err != nil {
		return false, err
	}
	if len(c.hist.redo) == 0 {
		return false, nil
	}

	i := len(c.hist.redo) - 1
	next := c.hist.redo[i]
	c.hist.redo = c.hist.redo[:i]
	if c.historyLimit > 0 {
		c.hist.undo = pushLimited(c.hist.undo, c.snapshot(), c.historyLimit)
	}

	c.restore(next)
	c.version++
	c.emit(EventEdited)
	return true, nil
}
