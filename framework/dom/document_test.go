package dom_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-sprinkles/framework/dom"
)

const page = `<!DOCTYPE html>
<html><body>
  <div id="outer" class="panel">
    <ul class="items">
      <li class="item" data-id="1"><span class="label">one</span></li>
      <li class="item" data-id="2"><span class="label">two</span></li>
    </ul>
  </div>
</body></html>`

func parse(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	return doc
}

func mustQuery(t *testing.T, doc *dom.Document, selector string) *dom.Node {
	t.Helper()
	n, err := doc.QuerySelector(selector)
	require.NoError(t, err)
	require.NotNil(t, n, "no element matches %q", selector)
	return n
}

// ── Tree ──────────────────────────────────────────────────────────────────────

func TestDocument_RootAndBody(t *testing.T) {
	doc := parse(t)

	assert.Equal(t, "html", doc.Root().Tag())
	assert.Equal(t, "body", doc.Body().Tag())
	assert.Nil(t, doc.Root().Parent())
}

func TestDocument_WrappersAreStable(t *testing.T) {
	doc := parse(t)

	a := mustQuery(t, doc, "#outer")
	b := mustQuery(t, doc, "div.panel")
	assert.Same(t, a, b)

	li := mustQuery(t, doc, `li[data-id="1"]`)
	assert.Equal(t, dom.Element(a), li.Parent().Parent())
}

func TestDocument_QuerySelector_NoMatch(t *testing.T) {
	doc := parse(t)

	n, err := doc.QuerySelector(".missing")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestDocument_QuerySelectorAll_DocumentOrder(t *testing.T) {
	doc := parse(t)

	items, err := doc.QuerySelectorAll(".item")
	require.NoError(t, err)
	require.Len(t, items, 2)

	id, _ := items[0].Attribute("data-id")
	assert.Equal(t, "1", id)
	assert.Equal(t, "two", items[1].Text())
}

func TestDocument_InvalidSelector(t *testing.T) {
	doc := parse(t)

	_, err := doc.QuerySelector("li[")

	var selErr *dom.SelectorError
	require.True(t, errors.As(err, &selErr))
	assert.Equal(t, "li[", selErr.Selector)
	assert.Error(t, dom.ValidSelector("div:nth-child("))
	assert.NoError(t, dom.ValidSelector("ul > li.item"))
}

func TestNode_Matches(t *testing.T) {
	doc := parse(t)
	label := mustQuery(t, doc, ".label")

	ok, err := label.Matches(".item .label")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = label.Matches(".item")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNode_QuerySelectorAll_ExcludesSelf(t *testing.T) {
	doc := parse(t)
	outer := mustQuery(t, doc, "#outer")

	found, err := outer.QuerySelectorAll("div, li")
	require.NoError(t, err)
	require.Len(t, found, 2)
	for _, el := range found {
		assert.Equal(t, "li", el.Tag())
	}
}

func TestNode_Children(t *testing.T) {
	doc := parse(t)
	ul := mustQuery(t, doc, "ul")

	children := ul.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "li", children[1].Tag())
}

func TestNode_Attributes(t *testing.T) {
	doc := parse(t)
	li := mustQuery(t, doc, `li[data-id="2"]`)

	li.SetAttribute("class", "item done")
	li.SetAttribute("title", "second")
	li.RemoveAttribute("data-id")

	class, _ := li.Attribute("class")
	assert.Equal(t, "item done", class)
	title, ok := li.Attribute("title")
	assert.True(t, ok)
	assert.Equal(t, "second", title)
	_, ok = li.Attribute("data-id")
	assert.False(t, ok)
}

func TestNode_CreateAppendRemove(t *testing.T) {
	doc := parse(t)
	ul := mustQuery(t, doc, "ul")

	li := doc.CreateElement("LI", map[string]string{"data-id": "3", "class": "item"})
	li.SetText("three")
	assert.Nil(t, li.Parent())

	ul.AppendChild(li)
	assert.Equal(t, dom.Element(ul), li.Parent())
	assert.Equal(t, `<li class="item" data-id="3">three</li>`, li.HTML())

	items, _ := doc.QuerySelectorAll(".item")
	assert.Len(t, items, 3)

	li.Remove()
	items, _ = doc.QuerySelectorAll(".item")
	assert.Len(t, items, 2)
	assert.NotContains(t, doc.HTML(), "three")
}

// ── Events ────────────────────────────────────────────────────────────────────

func TestDispatch_BubblesToDocumentElement(t *testing.T) {
	doc := parse(t)
	label := mustQuery(t, doc, ".label")

	var path []string
	record := func(ev dom.Event) { path = append(path, ev.CurrentTarget().Tag()) }
	for _, sel := range []string{".label", "li", "ul", "#outer", "body", "html"} {
		mustQuery(t, doc, sel).AddEventListener("click", record)
	}

	ev := doc.Dispatch(label, "click")

	assert.Equal(t, []string{"span", "li", "ul", "div", "body", "html"}, path)
	assert.Equal(t, "click", ev.Type())
	assert.Equal(t, dom.Element(label), ev.Target())
	assert.Nil(t, ev.CurrentTarget())
}

func TestDispatch_OtherTypesIgnored(t *testing.T) {
	doc := parse(t)
	li := mustQuery(t, doc, "li")

	fired := false
	li.AddEventListener("submit", func(dom.Event) { fired = true })
	doc.Dispatch(li, "click")

	assert.False(t, fired)
}

func TestDispatch_StopPropagation(t *testing.T) {
	doc := parse(t)
	li := mustQuery(t, doc, "li")
	ul := mustQuery(t, doc, "ul")

	var calls []string
	li.AddEventListener("click", func(ev dom.Event) {
		calls = append(calls, "first")
		ev.StopPropagation()
	})
	li.AddEventListener("click", func(dom.Event) { calls = append(calls, "second") })
	ul.AddEventListener("click", func(dom.Event) { calls = append(calls, "parent") })

	ev := doc.Dispatch(li, "click")

	assert.Equal(t, []string{"first", "second"}, calls)
	assert.True(t, ev.PropagationStopped())
	assert.False(t, ev.ImmediatePropagationStopped())
}

func TestDispatch_StopImmediatePropagation(t *testing.T) {
	doc := parse(t)
	li := mustQuery(t, doc, "li")
	ul := mustQuery(t, doc, "ul")

	var calls []string
	li.AddEventListener("click", func(ev dom.Event) {
		calls = append(calls, "first")
		ev.StopImmediatePropagation()
	})
	li.AddEventListener("click", func(dom.Event) { calls = append(calls, "second") })
	ul.AddEventListener("click", func(dom.Event) { calls = append(calls, "parent") })

	ev := doc.Dispatch(li, "click")

	assert.Equal(t, []string{"first"}, calls)
	assert.True(t, ev.ImmediatePropagationStopped())
	assert.True(t, ev.PropagationStopped())
}

func TestDispatch_PreventDefault(t *testing.T) {
	doc := parse(t)
	li := mustQuery(t, doc, "li")
	mustQuery(t, doc, "#outer").AddEventListener("submit", func(ev dom.Event) { ev.PreventDefault() })

	ev := doc.Dispatch(li, "submit")

	assert.True(t, ev.DefaultPrevented())
	assert.False(t, ev.PropagationStopped())
}

func TestRemoveEventListener(t *testing.T) {
	doc := parse(t)
	li := mustQuery(t, doc, "li")

	calls := 0
	keep := li.AddEventListener("click", func(dom.Event) { calls++ })
	drop := li.AddEventListener("click", func(dom.Event) { calls += 10 })
	assert.NotEqual(t, keep, drop)
	assert.Equal(t, 2, doc.ListenerCount(li, "click"))

	li.RemoveEventListener("click", drop)
	li.RemoveEventListener("click", drop)
	doc.Dispatch(li, "click")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, doc.ListenerCount(li, "click"))
}

func TestDocument_Render(t *testing.T) {
	doc := parse(t)
	mustQuery(t, doc, `li[data-id="1"] .label`).SetText("uno")

	var b strings.Builder
	require.NoError(t, doc.Render(&b))
	assert.Contains(t, b.String(), `<span class="label">uno</span>`)
	assert.Equal(t, b.String(), doc.HTML())
}
