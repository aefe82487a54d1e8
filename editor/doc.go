// Package editor provides a Bubble Tea component that edits a blocks.Page.
//
// The component renders every block of the page with its marks styled,
// tracks a cursor and a selection inside the focused block session, and
// forwards structural keys (Enter, Backspace, Delete, typing, undo) to the
// session so the page sees the same boundary signals as any other host.
package editor
