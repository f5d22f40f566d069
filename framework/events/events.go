// Package events binds a controller's declarative event map to its element.
package events

import (
	"fmt"
	"sort"
	"strings"

	"github.com/km-arc/go-sprinkles/framework/dom"
)

// EventMap maps a binding key to a handler name.
//
// A key is "[selector ]eventType". Without a selector the handler listens on
// the controller's own element; with one, events from matching descendants
// are delegated to it.
//
//	events.EventMap{
//	    "click":           "toggle",
//	    ".item click":     "select",
//	    "form .q input":   "search",
//	}
type EventMap map[string]string

// HandlerTable maps handler names to handlers. Method values carry their
// receiver, so handlers always run against the controller instance.
//
//	func (c *Counter) Handlers() events.HandlerTable {
//	    return events.HandlerTable{"increment": c.increment}
//	}
type HandlerTable map[string]func(dom.Event)

// Declarer is implemented by controllers that declare an event map.
type Declarer interface {
	Events() EventMap
}

// Handled is implemented by controllers exposing their handlers by name.
type Handled interface {
	Handlers() HandlerTable
}

// Controller is a controller with declarative event bindings.
type Controller interface {
	Declarer
	Handled
}

// Binding is one parsed event-map entry.
type Binding struct {
	Key      string
	Selector string // empty: listen on the root element itself
	Type     string
	Handler  string
}

// Delegated reports whether the binding targets descendants.
func (b Binding) Delegated() bool { return b.Selector != "" }

// InvalidEventKeyError is returned for keys without an event type.
type InvalidEventKeyError struct {
	Key    string
	Reason string
}

func (e *InvalidEventKeyError) Error() string {
	return fmt.Sprintf("events: invalid key %q: %s", e.Key, e.Reason)
}

// UnknownHandlerError is returned when an event map names a handler the
// controller does not expose.
type UnknownHandlerError struct {
	Controller string
	Key        string
	Handler    string
}

func (e *UnknownHandlerError) Error() string {
	return fmt.Sprintf("events: controller [%s] has no handler %q for %q", e.Controller, e.Handler, e.Key)
}

// ParseKey splits a binding key at its last space: the left part is the
// selector, the right part the event type. A key without a space is an event
// type with no selector.
func ParseKey(key string) (selector, eventType string) {
	key = strings.TrimSpace(key)
	i := strings.LastIndex(key, " ")
	if i < 0 {
		return "", key
	}
	return strings.TrimSpace(key[:i]), key[i+1:]
}

// Parse parses an event map into bindings ordered by key.
func Parse(m EventMap) ([]Binding, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Binding, 0, len(keys))
	for _, k := range keys {
		selector, eventType := ParseKey(k)
		if eventType == "" {
			return nil, &InvalidEventKeyError{Key: k, Reason: "missing event type"}
		}
		if m[k] == "" {
			return nil, &InvalidEventKeyError{Key: k, Reason: "missing handler name"}
		}
		if selector != "" {
			if err := dom.ValidSelector(selector); err != nil {
				return nil, &InvalidEventKeyError{Key: k, Reason: err.Error()}
			}
		}
		out = append(out, Binding{Key: k, Selector: selector, Type: eventType, Handler: m[k]})
	}
	return out, nil
}
