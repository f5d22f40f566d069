package dom

// SyntheticEvent is the Event created by Document.Dispatch.
type SyntheticEvent struct {
	typ       string
	target    *Node
	current   *Node
	stopped   bool
	immediate bool
	prevented bool
}

var _ Event = (*SyntheticEvent)(nil)

func (e *SyntheticEvent) Type() string { return e.typ }

func (e *SyntheticEvent) Target() Element {
	if e.target == nil {
		return nil
	}
	return e.target
}

func (e *SyntheticEvent) CurrentTarget() Element {
	if e.current == nil {
		return nil
	}
	return e.current
}

func (e *SyntheticEvent) StopPropagation() { e.stopped = true }

func (e *SyntheticEvent) StopImmediatePropagation() {
	e.stopped = true
	e.immediate = true
}

func (e *SyntheticEvent) PropagationStopped() bool { return e.stopped }

func (e *SyntheticEvent) ImmediatePropagationStopped() bool { return e.immediate }

func (e *SyntheticEvent) PreventDefault() { e.prevented = true }

func (e *SyntheticEvent) DefaultPrevented() bool { return e.prevented }
