package session

import (
	"fmt"

	"github.com/iw2rmb/inkwell/document"
)

// EventKind identifies what happened in a session.
type EventKind uint8

const (
	// EventEdited follows a local command that changed the document.
	EventEdited EventKind = iota
	// EventContentReplaced follows ApplyExternalContent with new content.
	EventContentReplaced
	// EventBoundarySplit asks the host to split at the cursor. The
	// document is not changed.
	EventBoundarySplit
	// EventBoundaryDelete asks the host to remove this session.
	EventBoundaryDelete
	EventFocused
	EventBlurred
)

var eventKindNames = [...]string{
	EventEdited:          "edited",
	EventContentReplaced: "content-replaced",
	EventBoundarySplit:   "boundary-split",
	EventBoundaryDelete:  "boundary-delete",
	EventFocused:         "focused",
	EventBlurred:         "blurred",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("event(%d)", uint8(k))
}

// Event is one entry of a session's ordered event stream.
type Event struct {
	// Seq increases by one per event within a session, starting at 1.
	Seq       uint64
	SessionID string
	Kind      EventKind

	// Markup and Cursor are the session state after the operation.
	Markup  string
	Cursor  document.Pos
	Version uint64
}
