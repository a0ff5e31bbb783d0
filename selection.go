package hexfolio

// Selection is the project chosen by the user together with where its card
// was when it was chosen. Origin is only measured, never mutated.
type Selection struct {
	Project    any
	OriginRect Rect
	Origin     Element
}

// Selector holds at most one active Selection. A modal subscribes through
// OnSelect and OnClose; pages call SelectProject and CloseProject.
type Selector struct {
	current *Selection
	closing bool

	// OnSelect runs after a selection is accepted.
	OnSelect func(Selection)
	// OnClose runs when a close is requested for the active selection.
	OnClose func(Selection)
	// OnReveal runs when the selection is cleared and the origin is visible
	// again.
	OnReveal func(Selection)
}

// NewSelector returns an empty selector.
func NewSelector() *Selector {
	return &Selector{}
}

// SelectProject makes project the active selection. It is a no-op returning
// false while another selection is active, including one that is closing.
func (s *Selector) SelectProject(project any, originRect Rect, origin Element) bool {
	if s.current != nil {
		return false
	}
	s.current = &Selection{Project: project, OriginRect: originRect, Origin: origin}
	s.closing = false
	if s.OnSelect != nil {
		s.OnSelect(*s.current)
	}
	return true
}

// CloseProject requests that the active selection close. The selection stays
// active until MarkOriginRevealed. It returns false when nothing is selected
// or a close is already under way.
func (s *Selector) CloseProject() bool {
	if s.current == nil || s.closing {
		return false
	}
	s.closing = true
	if s.OnClose != nil {
		s.OnClose(*s.current)
	}
	return true
}

// MarkOriginRevealed clears the selection and lets the origin show again.
func (s *Selector) MarkOriginRevealed() {
	if s.current == nil {
		return
	}
	sel := *s.current
	s.current = nil
	s.closing = false
	if s.OnReveal != nil {
		s.OnReveal(sel)
	}
}

// Current returns the active selection.
func (s *Selector) Current() (Selection, bool) {
	if s.current == nil {
		return Selection{}, false
	}
	return *s.current, true
}

// Closing reports whether a close has been requested.
func (s *Selector) Closing() bool {
	return s.closing
}

// OriginHidden reports whether el is the origin of the active selection and
// should therefore be hidden.
func (s *Selector) OriginHidden(el Element) bool {
	return s.current != nil && el != nil && s.current.Origin == el
}
