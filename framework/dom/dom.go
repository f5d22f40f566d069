// Package dom defines the small DOM capability surface the component runtime
// consumes, and a server-side Document implementing it on top of
// golang.org/x/net/html.
//
// The runtime never creates elements or inspects styles; it only walks the
// tree, tests selectors and adds or removes listeners:
//
//	type Element interface {
//	    Parent() Element
//	    Matches(selector string) (bool, error)
//	    AddEventListener(eventType string, l Listener) ListenerID
//	    ...
//	}
//
// A browser host (syscall/js) or a test double can implement Element and
// Event directly.
package dom

// Listener receives dispatched events.
type Listener func(Event)

// ListenerID identifies an attached listener so it can be removed.
type ListenerID uint64

// Element is a node of the element tree.
type Element interface {
	// Tag returns the lower-case tag name.
	Tag() string

	// Parent returns the parent element, or nil at the document element.
	Parent() Element

	// Children returns the child elements in document order.
	Children() []Element

	// Attribute returns an attribute value and whether it is present.
	Attribute(name string) (string, bool)

	// Matches reports whether the element matches a CSS selector.
	Matches(selector string) (bool, error)

	// QuerySelectorAll returns the descendants matching a CSS selector.
	QuerySelectorAll(selector string) ([]Element, error)

	AddEventListener(eventType string, l Listener) ListenerID
	RemoveEventListener(eventType string, id ListenerID)
}

// Event is a dispatched event. Propagation control belongs to the event, not
// to the runtime.
type Event interface {
	Type() string

	// Target is the element the event was dispatched to.
	Target() Element

	// CurrentTarget is the element whose listener is running.
	CurrentTarget() Element

	// StopPropagation prevents listeners on further ancestors from running.
	StopPropagation()

	// StopImmediatePropagation also prevents the remaining listeners on the
	// current element from running.
	StopImmediatePropagation()

	PropagationStopped() bool

	// ImmediatePropagationStopped reports whether StopImmediatePropagation
	// was called.
	ImmediatePropagationStopped() bool

	PreventDefault()
	DefaultPrevented() bool
}
