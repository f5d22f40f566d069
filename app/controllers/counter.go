// Package controllers holds the example application's controllers.
package controllers

import (
	"fmt"
	"strconv"

	"github.com/km-arc/go-sprinkles/app/services"
	"github.com/km-arc/go-sprinkles/framework/container"
	"github.com/km-arc/go-sprinkles/framework/dom"
	"github.com/km-arc/go-sprinkles/framework/events"
)

// textElement is the part of a server-side element the controllers mutate.
type textElement interface {
	dom.Element
	SetText(text string)
	SetAttribute(name, value string)
}

// Counter increments and decrements a count kept in the shared CounterStore.
//
//	<div data-controller="counter" id="likes" data-step="2">
//	  <button class="decrement">-</button>
//	  <span class="count">0</span>
//	  <button class="increment">+</button>
//	</div>
type Counter struct {
	store *services.CounterStore
	el    dom.Element
	key   string
	step  int
}

// CounterFactory is the "counter" controller factory. It needs "counterStore".
func CounterFactory(deps ...any) container.Constructor {
	store := deps[0].(*services.CounterStore)
	return func(args ...any) (any, error) {
		el, ok := args[1].(dom.Element)
		if !ok {
			return nil, fmt.Errorf("counter: argument 2 is %T, want dom.Element", args[1])
		}
		return NewCounter(store, el)
	}
}

// NewCounter builds a counter bound to el and renders the current count.
func NewCounter(store *services.CounterStore, el dom.Element) (*Counter, error) {
	c := &Counter{store: store, el: el, key: "counter", step: 1}
	if id, ok := el.Attribute("id"); ok && id != "" {
		c.key = id
	}
	if raw, ok := el.Attribute("data-step"); ok {
		step, err := strconv.Atoi(raw)
		if err != nil || step <= 0 {
			return nil, fmt.Errorf("counter: invalid data-step %q", raw)
		}
		c.step = step
	}
	c.render()
	return c, nil
}

func (c *Counter) Events() events.EventMap {
	return events.EventMap{
		".increment click": "increment",
		".decrement click": "decrement",
		"dblclick":         "reset",
	}
}

func (c *Counter) Handlers() events.HandlerTable {
	return events.HandlerTable{
		"increment": c.increment,
		"decrement": c.decrement,
		"reset":     c.reset,
	}
}

// Count returns the current count.
func (c *Counter) Count() int { return c.store.Get(c.key) }

func (c *Counter) increment(dom.Event) {
	c.store.Add(c.key, c.step)
	c.render()
}

func (c *Counter) decrement(dom.Event) {
	c.store.Add(c.key, -c.step)
	c.render()
}

func (c *Counter) reset(dom.Event) {
	c.store.Add(c.key, -c.store.Get(c.key))
	c.render()
}

func (c *Counter) render() {
	found, err := c.el.QuerySelectorAll(".count")
	if err != nil || len(found) == 0 {
		return
	}
	if out, ok := found[0].(textElement); ok {
		out.SetText(strconv.Itoa(c.store.Get(c.key)))
	}
}
