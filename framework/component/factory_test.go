package component_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-sprinkles/framework/component"
	"github.com/km-arc/go-sprinkles/framework/container"
	"github.com/km-arc/go-sprinkles/framework/dom"
	"github.com/km-arc/go-sprinkles/framework/events"
)

type counterStore struct{ hits int }

// widget records what its constructor received and counts clicks.
type widget struct {
	args  []any
	el    dom.Element
	store *counterStore
}

func (w *widget) Events() events.EventMap {
	return events.EventMap{"click": "hit"}
}

func (w *widget) Handlers() events.HandlerTable {
	return events.HandlerTable{"hit": func(dom.Event) { w.store.hits++ }}
}

func widgetFactory(deps ...any) container.Constructor {
	return func(args ...any) (any, error) {
		w := &widget{args: args, store: deps[0].(*counterStore)}
		for _, a := range args {
			if el, ok := a.(dom.Element); ok {
				w.el = el
			}
		}
		return w, nil
	}
}

func newFactory(t *testing.T) (*component.Factory, *container.Registry, *dom.Document) {
	t.Helper()
	r := container.NewRegistry()
	storeBuilds := 0
	r.Service("store", nil, func(...any) (any, error) {
		storeBuilds++
		return &counterStore{}, nil
	})
	r.Value("label", "hello")
	r.Controller("widget", []string{"store", "label"}, widgetFactory)

	doc, err := dom.ParseString(`<html><body>
		<div id="a"></div>
		<div id="b"></div>
	</body></html>`)
	require.NoError(t, err)

	t.Cleanup(func() { assert.LessOrEqual(t, storeBuilds, 1) })
	return component.NewFactory(container.NewInjector(r)), r, doc
}

func element(t *testing.T, doc *dom.Document, selector string) *dom.Node {
	t.Helper()
	n, err := doc.QuerySelector(selector)
	require.NoError(t, err)
	require.NotNil(t, n)
	return n
}

// ── Instantiate ───────────────────────────────────────────────────────────────

func TestInstantiate_ArgumentOrder(t *testing.T) {
	f, _, doc := newFactory(t)
	el := element(t, doc, "#a")

	inst, err := f.Instantiate("widget", "horizontal", component.At(el), 2)
	require.NoError(t, err)

	w := inst.(*widget)
	require.Len(t, w.args, 5)
	assert.IsType(t, &counterStore{}, w.args[0])
	assert.Equal(t, "hello", w.args[1])
	assert.Equal(t, "horizontal", w.args[2])
	assert.Equal(t, dom.Element(el), w.args[3])
	assert.Equal(t, 2, w.args[4])
}

func TestInstantiate_BindsEventsBeforeReturning(t *testing.T) {
	f, _, doc := newFactory(t)
	el := element(t, doc, "#a")

	inst, err := f.Instantiate("widget", component.At(el))
	require.NoError(t, err)

	doc.Dispatch(el, "click")
	doc.Dispatch(el, "click")
	assert.Equal(t, 2, inst.(*widget).store.hits)
}

func TestInstantiate_DistinctInstancesShareServices(t *testing.T) {
	f, _, doc := newFactory(t)

	a, err := f.Instantiate("widget", component.At(element(t, doc, "#a")))
	require.NoError(t, err)
	b, err := f.Instantiate("widget", component.At(element(t, doc, "#b")))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Same(t, a.(*widget).store, b.(*widget).store)
	assert.Equal(t, dom.Element(element(t, doc, "#b")), b.(*widget).el)
}

// gadget replaces widget under the same name in re-registration tests.
type gadget struct{ taps int }

func (g *gadget) Events() events.EventMap { return events.EventMap{"dblclick": "tap"} }

func (g *gadget) Handlers() events.HandlerTable {
	return events.HandlerTable{"tap": func(dom.Event) { g.taps++ }}
}

func TestInstantiate_ReRegisteredControllerUsesNewEventMap(t *testing.T) {
	f, r, doc := newFactory(t)
	a := element(t, doc, "#a")
	b := element(t, doc, "#b")

	_, err := f.Instantiate("widget", component.At(a))
	require.NoError(t, err)

	r.Controller("widget", nil, func(...any) container.Constructor {
		return func(...any) (any, error) { return &gadget{}, nil }
	})
	inst, err := f.Instantiate("widget", component.At(b))
	require.NoError(t, err)

	doc.Dispatch(b, "dblclick")
	assert.Equal(t, 1, inst.(*gadget).taps)
}

func TestInstantiate_MissingAnchor(t *testing.T) {
	f, _, _ := newFactory(t)

	inst, err := f.Instantiate("widget", "horizontal")

	var missing *component.MissingElementArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "widget", missing.Controller)
	assert.Nil(t, inst)
}

func TestInstantiate_NilAnchorElement(t *testing.T) {
	f, _, _ := newFactory(t)

	_, err := f.Instantiate("widget", component.At(nil))

	var missing *component.MissingElementArgumentError
	assert.ErrorAs(t, err, &missing)
}

func TestInstantiate_TypedNilAnchorElement(t *testing.T) {
	f, _, _ := newFactory(t)

	inst, err := f.Instantiate("widget", component.At((*dom.Node)(nil)))

	var missing *component.MissingElementArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "widget", missing.Controller)
	assert.Nil(t, inst)
}

func TestInstantiate_AmbiguousAnchor(t *testing.T) {
	f, _, doc := newFactory(t)

	_, err := f.Instantiate("widget",
		component.At(element(t, doc, "#a")),
		component.At(element(t, doc, "#b")),
	)

	var ambiguous *component.AmbiguousElementArgumentError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 2, ambiguous.Count)
}

func TestInstantiate_UnknownController(t *testing.T) {
	f, _, doc := newFactory(t)

	_, err := f.Instantiate("ghost", component.At(element(t, doc, "#a")))

	var unknown *container.UnknownDependencyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.Token)
}

func TestInstantiate_NotAController(t *testing.T) {
	f, _, doc := newFactory(t)

	_, err := f.Instantiate("store", component.At(element(t, doc, "#a")))

	var kind *container.InvalidDependencyKindError
	require.ErrorAs(t, err, &kind)
	assert.Equal(t, container.KindService, kind.Kind)
}

func TestInstantiate_UnknownDependencyNamesController(t *testing.T) {
	f, r, doc := newFactory(t)
	called := false
	r.Controller("broken", []string{"store", "nope"}, func(...any) container.Constructor {
		called = true
		return nil
	})

	inst, err := f.Instantiate("broken", component.At(element(t, doc, "#a")))

	var unknown *container.UnknownDependencyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Token)
	assert.Equal(t, "broken", unknown.Requester)
	assert.Nil(t, inst)
	assert.False(t, called, "factory must not run when dependencies fail")
}

func TestInstantiate_ControllerDependingOnController(t *testing.T) {
	f, r, doc := newFactory(t)
	r.Controller("outer", []string{"widget"}, widgetFactory)

	_, err := f.Instantiate("outer", component.At(element(t, doc, "#a")))

	var kind *container.InvalidDependencyKindError
	require.ErrorAs(t, err, &kind)
	assert.Equal(t, "widget", kind.Token)
	assert.Equal(t, "outer", kind.Requester)
}

func TestInstantiate_ConstructorError(t *testing.T) {
	f, r, doc := newFactory(t)
	boom := errors.New("boom")
	r.Controller("failing", nil, func(...any) container.Constructor {
		return func(...any) (any, error) { return nil, boom }
	})

	inst, err := f.Instantiate("failing", component.At(element(t, doc, "#a")))

	var ctorErr *component.ConstructorError
	require.ErrorAs(t, err, &ctorErr)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, inst)
}

func TestInstantiate_NilConstructor(t *testing.T) {
	f, r, doc := newFactory(t)
	r.Controller("empty", nil, func(...any) container.Constructor { return nil })

	_, err := f.Instantiate("empty", component.At(element(t, doc, "#a")))

	var ctorErr *component.ConstructorError
	assert.ErrorAs(t, err, &ctorErr)
}

type unbound struct{}

func (unbound) Events() events.EventMap       { return events.EventMap{"click": "missing"} }
func (unbound) Handlers() events.HandlerTable { return nil }

func TestInstantiate_BindFailureReturnsNoInstance(t *testing.T) {
	f, r, doc := newFactory(t)
	r.Controller("unbound", nil, func(...any) container.Constructor {
		return func(...any) (any, error) { return unbound{}, nil }
	})
	el := element(t, doc, "#a")

	inst, err := f.Instantiate("unbound", component.At(el))

	var unknown *events.UnknownHandlerError
	require.ErrorAs(t, err, &unknown)
	assert.Nil(t, inst)
	assert.Zero(t, doc.ListenerCount(el, "click"))
}

func TestMount_Detach(t *testing.T) {
	f, _, doc := newFactory(t)
	el := element(t, doc, "#a")

	m, err := f.Mount("widget", component.At(el))
	require.NoError(t, err)
	assert.Equal(t, "widget", m.Name)
	assert.Equal(t, dom.Element(el), m.Element)

	m.Detach()
	doc.Dispatch(el, "click")
	assert.Zero(t, m.Instance.(*widget).store.hits)
}
