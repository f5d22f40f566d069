package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Node is an element of a Document.
type Node struct {
	doc *Document
	raw *html.Node

	// guarded by doc.mu
	listeners map[string][]listener
}

var _ Element = (*Node)(nil)

// Tag returns the lower-case tag name.
func (n *Node) Tag() string { return n.raw.Data }

// Parent returns the parent element, or nil at the document element or when
// n is detached.
func (n *Node) Parent() Element {
	if p := n.parent(); p != nil {
		return p
	}
	return nil
}

func (n *Node) parent() *Node {
	return n.doc.wrap(n.raw.Parent)
}

// Children returns the child elements in document order.
func (n *Node) Children() []Element {
	var out []Element
	for c := n.raw.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, n.doc.wrap(c))
		}
	}
	return out
}

// Attribute returns an attribute value and whether it is present.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.raw.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute sets or replaces an attribute.
func (n *Node) SetAttribute(name, value string) {
	for i, a := range n.raw.Attr {
		if a.Namespace == "" && a.Key == name {
			n.raw.Attr[i].Val = value
			return
		}
	}
	n.raw.Attr = append(n.raw.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttribute removes an attribute if present.
func (n *Node) RemoveAttribute(name string) {
	for i, a := range n.raw.Attr {
		if a.Namespace == "" && a.Key == name {
			n.raw.Attr = append(n.raw.Attr[:i], n.raw.Attr[i+1:]...)
			return
		}
	}
}

// Matches reports whether n matches selector.
func (n *Node) Matches(selector string) (bool, error) {
	sel, err := compile(selector)
	if err != nil {
		return false, err
	}
	return sel.Match(n.raw), nil
}

// QuerySelectorAll returns the descendants of n matching selector.
func (n *Node) QuerySelectorAll(selector string) ([]Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	var out []Element
	for _, m := range sel.MatchAll(n.raw) {
		if m != n.raw {
			out = append(out, n.doc.wrap(m))
		}
	}
	return out, nil
}

// AddEventListener attaches l for eventType.
func (n *Node) AddEventListener(eventType string, l Listener) ListenerID {
	return n.doc.addListener(n, eventType, l)
}

// RemoveEventListener detaches the listener with the given id.
func (n *Node) RemoveEventListener(eventType string, id ListenerID) {
	n.doc.removeListener(n, eventType, id)
}

// Text returns the concatenated text content of n.
func (n *Node) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.TextNode {
			b.WriteString(h.Data)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.raw)
	return b.String()
}

// SetText replaces the children of n with a single text node.
func (n *Node) SetText(text string) {
	for c := n.raw.FirstChild; c != nil; {
		next := c.NextSibling
		n.raw.RemoveChild(c)
		c = next
	}
	n.raw.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// AppendChild appends child to n, detaching it from its parent first.
func (n *Node) AppendChild(child *Node) {
	if child.raw.Parent != nil {
		child.raw.Parent.RemoveChild(child.raw)
	}
	n.raw.AppendChild(child.raw)
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.raw.Parent != nil {
		n.raw.Parent.RemoveChild(n.raw)
	}
}

// HTML returns the outer HTML of n.
func (n *Node) HTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n.raw)
	return buf.String()
}
