package session

import (
	"fmt"

	"github.com/iw2rmb/inkwell/command"
	"github.com/iw2rmb/inkwell/document"
)

// Apply runs a command intent against the session document. A changed
// document is recorded in history and reported as EventEdited; a no-op
// only moves the cursor.
func (c *Controller) Apply(in command.Intent) (command.Result, error) {
	if err := c.alive(); err != nil {
		return command.Result{}, err
	}
	res, err := command.Apply(c.doc, in)
	if err != nil {
		return command.Result{Doc: c.doc, Cursor: c.cursor}, fmt.Errorf("session: %v: %w", in.Kind, err)
	}
	c.commit(res)
	return res, nil
}

func (c *Controller) commit(res command.Result) {
	if !res.Changed {
		c.cursor = document.ClampPos(c.doc, res.Cursor)
		return
	}
	markup := document.Serialize(res.Doc)
	if markup == c.markup {
		c.cursor = document.ClampPos(c.doc, res.Cursor)
		return
	}

	c.recordUndo(c.snapshot())
	c.doc = res.Doc
	c.markup = markup
	c.cursor = res.Cursor
	c.version++
	c.emit(EventEdited)
}

func (c *Controller) SplitBlock(at document.Pos) (command.Result, error) {
	return c.Apply(command.Intent{Kind: command.KindSplitBlock, At: at})
}

func (c *Controller) MergeWithPrevious(at document.Pos) (command.Result, error) {
	return c.Apply(command.Intent{Kind: command.KindMergeWithPrevious, At: at})
}

func (c *Controller) ToggleMark(r document.Range, mark document.Mark) (command.Result, error) {
	return c.Apply(command.Intent{Kind: command.KindToggleMark, Range: r, Mark: mark})
}

// InsertImage fails with command.ErrInvalidURI for an unusable src and
// leaves the document unchanged.
func (c *Controller) InsertImage(at document.Pos, src string) (command.Result, error) {
	return c.Apply(command.Intent{Kind: command.KindInsertImage, At: at, Src: src})
}

func (c *Controller) InsertText(at document.Pos, text string) (command.Result, error) {
	return c.Apply(command.Intent{Kind: command.KindInsertText, At: at, Text: text})
}

func (c *Controller) DeleteBackward(at document.Pos) (command.Result, error) {
	return c.Apply(command.Intent{Kind: command.KindDeleteBackward, At: at})
}

func (c *Controller) DeleteForward(at document.Pos) (command.Result, error) {
	return c.Apply(command.Intent{Kind: command.KindDeleteForward, At: at})
}

func (c *Controller) DeleteRange(r document.Range) (command.Result, error) {
	return c.Apply(command.Intent{Kind: command.KindDeleteRange, Range: r})
}
