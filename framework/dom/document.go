package dom

import (
	"bytes"
	"io"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document whose elements implement Element.
// Element wrappers are stable: the same node is always returned as the same
// *Node, so elements can be compared with ==.
type Document struct {
	raw *html.Node

	mu     sync.Mutex
	nodes  map[*html.Node]*Node
	nextID ListenerID
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	raw, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{raw: raw, nodes: make(map[*html.Node]*Node)}, nil
}

// ParseString reads an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document element (<html>).
func (d *Document) Root() *Node {
	for c := d.raw.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.wrap(c)
		}
	}
	return nil
}

// Body returns the <body> element.
func (d *Document) Body() *Node {
	n, _ := d.QuerySelector("body")
	return n
}

// QuerySelector returns the first element matching selector, or nil.
func (d *Document) QuerySelector(selector string) (*Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	n := sel.MatchFirst(d.raw)
	if n == nil {
		return nil, nil
	}
	return d.wrap(n), nil
}

// QuerySelectorAll returns all elements matching selector in document order.
func (d *Document) QuerySelectorAll(selector string) ([]*Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	matches := sel.MatchAll(d.raw)
	out := make([]*Node, 0, len(matches))
	for _, n := range matches {
		out = append(out, d.wrap(n))
	}
	return out, nil
}

// CreateElement creates a detached element. Attributes are set in key order.
func (d *Document) CreateElement(tag string, attrs map[string]string) *Node {
	tag = strings.ToLower(tag)
	raw := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		raw.Attr = append(raw.Attr, html.Attribute{Key: k, Val: attrs[k]})
	}
	return d.wrap(raw)
}

// Dispatch dispatches a new event of eventType at target. The event bubbles
// from target to the document element. It returns the event so callers can
// inspect DefaultPrevented.
func (d *Document) Dispatch(target *Node, eventType string) *SyntheticEvent {
	ev := &SyntheticEvent{typ: eventType, target: target}
	for n := target; n != nil; n = n.parent() {
		ev.current = n
		for _, l := range d.listenersOf(n, eventType) {
			l.fn(ev)
			if ev.immediate {
				break
			}
		}
		if ev.stopped {
			break
		}
	}
	ev.current = nil
	return ev
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.raw)
}

// HTML returns the document as an HTML string.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

// wrap returns the stable wrapper for an element node.
func (d *Document) wrap(raw *html.Node) *Node {
	if raw == nil || raw.Type != html.ElementNode {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if n, ok := d.nodes[raw]; ok {
		return n
	}
	n := &Node{doc: d, raw: raw}
	d.nodes[raw] = n
	return n
}

// ── Listeners ─────────────────────────────────────────────────────────────────

type listener struct {
	id ListenerID
	fn Listener
}

func (d *Document) addListener(n *Node, eventType string, fn Listener) ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	if n.listeners == nil {
		n.listeners = make(map[string][]listener)
	}
	n.listeners[eventType] = append(n.listeners[eventType], listener{id: d.nextID, fn: fn})
	return d.nextID
}

func (d *Document) removeListener(n *Node, eventType string, id ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ls := n.listeners[eventType]
	for i, l := range ls {
		if l.id == id {
			n.listeners[eventType] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// listenersOf snapshots the listeners so they may run without the lock.
func (d *Document) listenersOf(n *Node, eventType string) []listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]listener(nil), n.listeners[eventType]...)
}

// ListenerCount returns how many listeners for eventType are attached to n.
func (d *Document) ListenerCount(n *Node, eventType string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(n.listeners[eventType])
}
