package session

// Bridge is the set of host callbacks a Controller invokes. Nil callbacks
// are skipped.
type Bridge struct {
	// OnChange receives the fresh markup once per operation that changed
	// the document.
	OnChange func(markup string)

	OnBoundarySplit  func()
	OnBoundaryDelete func()
	OnFocus          func()
	OnBlur           func()

	// OnEvent observes every event before the kind-specific callback runs.
	OnEvent func(Event)
}

func (b Bridge) deliver(ev Event) {
	if b.OnEvent != nil {
		b.OnEvent(ev)
	}
	switch ev.Kind {
	case EventEdited, EventContentReplaced:
		if b.OnChange != nil {
			b.OnChange(ev.Markup)
		}
	case EventBoundarySplit:
		if b.OnBoundarySplit != nil {
			b.OnBoundarySplit()
		}
	case EventBoundaryDelete:
		if b.OnBoundaryDelete != nil {
			b.OnBoundaryDelete()
		}
	case EventFocused:
		if b.OnFocus != nil {
			b.OnFocus()
		}
	case EventBlurred:
		if b.OnBlur != nil {
			b.OnBlur()
		}
	}
}
