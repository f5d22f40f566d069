package controllers

import (
	"fmt"
	"strings"

	"github.com/km-arc/go-sprinkles/app/services"
	"github.com/km-arc/go-sprinkles/framework/container"
	"github.com/km-arc/go-sprinkles/framework/dom"
	"github.com/km-arc/go-sprinkles/framework/events"
)

// TodoList adds, toggles and removes items. Items are created after binding,
// so toggling and removal rely on delegation.
//
//	<section data-controller="todo-list">
//	  <h2 class="title"></h2>
//	  <form><input name="title" value=""><button>Add</button></form>
//	  <ul class="items"></ul>
//	</section>
type TodoList struct {
	store *services.TodoStore
	doc   *dom.Document
	el    dom.Element
}

// TodoListFactory is the "todo-list" controller factory. It needs
// "todoStore", "document" and "greeting".
func TodoListFactory(deps ...any) container.Constructor {
	store := deps[0].(*services.TodoStore)
	doc := deps[1].(*dom.Document)
	greeting, _ := deps[2].(string)

	return func(args ...any) (any, error) {
		el, ok := args[3].(dom.Element)
		if !ok {
			return nil, fmt.Errorf("todo-list: argument 4 is %T, want dom.Element", args[3])
		}
		t := &TodoList{store: store, doc: doc, el: el}
		if title := t.find(".title"); title != nil {
			title.SetText(greeting)
		}
		return t, nil
	}
}

func (t *TodoList) Events() events.EventMap {
	return events.EventMap{
		"form submit":         "add",
		".todo click":         "toggle",
		".todo .remove click": "remove",
	}
}

func (t *TodoList) Handlers() events.HandlerTable {
	return events.HandlerTable{
		"add":    t.add,
		"toggle": t.toggle,
		"remove": t.remove,
	}
}

func (t *TodoList) add(ev dom.Event) {
	ev.PreventDefault()

	input := t.find("input[name=title]")
	list := t.find(".items")
	if input == nil || list == nil {
		return
	}
	title, _ := input.Attribute("value")
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}

	item := t.store.Add(title)
	li := t.doc.CreateElement("li", map[string]string{"class": "todo", "data-id": item.ID})
	li.SetText(item.Title)
	remove := t.doc.CreateElement("button", map[string]string{"class": "remove"})
	remove.SetText("x")
	li.AppendChild(remove)
	if parent, ok := list.(*dom.Node); ok {
		parent.AppendChild(li)
	}
	input.SetAttribute("value", "")
}

func (t *TodoList) toggle(ev dom.Event) {
	li := closest(ev.Target(), ".todo")
	if li == nil {
		return
	}
	id, _ := li.Attribute("data-id")
	done, ok := t.store.Toggle(id)
	if !ok {
		return
	}
	if el, ok := li.(textElement); ok {
		if done {
			el.SetAttribute("class", "todo done")
		} else {
			el.SetAttribute("class", "todo")
		}
	}
}

func (t *TodoList) remove(ev dom.Event) {
	// The row's toggle handler must not see this click.
	ev.StopPropagation()

	li := closest(ev.Target(), ".todo")
	if li == nil {
		return
	}
	id, _ := li.Attribute("data-id")
	t.store.Remove(id)
	if n, ok := li.(*dom.Node); ok {
		n.Remove()
	}
}

func (t *TodoList) find(selector string) textElement {
	found, err := t.el.QuerySelectorAll(selector)
	if err != nil || len(found) == 0 {
		return nil
	}
	el, _ := found[0].(textElement)
	return el
}

// closest returns the nearest ancestor-or-self of el matching selector.
func closest(el dom.Element, selector string) dom.Element {
	for cur := el; cur != nil; cur = cur.Parent() {
		if ok, err := cur.Matches(selector); err == nil && ok {
			return cur
		}
	}
	return nil
}
