package events

import (
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/km-arc/go-sprinkles/framework/dom"
)

// Binder attaches a controller's event map to its root element.
//
// Each event type gets one listener on the root. Delegated bindings are
// matched at dispatch time by walking from the event target up to the root,
// so descendants added after binding are covered.
type Binder struct {
	logger *zap.Logger

	mu sync.Mutex

	// controller type → parsed event map
	parsed map[reflect.Type][]Binding
}

// Option configures a Binder.
type Option func(*Binder)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBinder creates a Binder.
func NewBinder(opts ...Option) *Binder {
	b := &Binder{
		logger: zap.NewNop(),
		parsed: make(map[reflect.Type][]Binding),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type bound struct {
	Binding
	fn func(dom.Event)
}

type typeGroup struct {
	eventType string
	delegated []bound
	direct    []bound
}

// Bind attaches the event map of instance to root. name identifies the
// controller in errors and logs. The event map is parsed once per concrete
// type of instance, so it must not vary between instances of one type.
// Instances without an event map are left alone.
//
// Every handler is looked up before anything is attached, so a failed Bind
// leaves root untouched. The returned func detaches the listeners.
func (b *Binder) Bind(name string, instance any, root dom.Element) (func(), error) {
	decl, ok := instance.(Declarer)
	if !ok {
		return func() {}, nil
	}

	bindings, err := b.bindings(decl)
	if err != nil {
		return nil, err
	}
	if len(bindings) == 0 {
		return func() {}, nil
	}

	var table HandlerTable
	if h, ok := instance.(Handled); ok {
		table = h.Handlers()
	}

	var groups []*typeGroup
	byType := make(map[string]*typeGroup)
	for _, bnd := range bindings {
		fn := table[bnd.Handler]
		if fn == nil {
			return nil, &UnknownHandlerError{Controller: name, Key: bnd.Key, Handler: bnd.Handler}
		}
		g, ok := byType[bnd.Type]
		if !ok {
			g = &typeGroup{eventType: bnd.Type}
			byType[bnd.Type] = g
			groups = append(groups, g)
		}
		if bnd.Delegated() {
			g.delegated = append(g.delegated, bound{Binding: bnd, fn: fn})
		} else {
			g.direct = append(g.direct, bound{Binding: bnd, fn: fn})
		}
	}

	ids := make([]dom.ListenerID, len(groups))
	for i, g := range groups {
		ids[i] = root.AddEventListener(g.eventType, listen(root, g))
	}

	b.logger.Debug("listeners attached",
		zap.String("controller", name),
		zap.String("element", root.Tag()),
		zap.Int("bindings", len(bindings)),
		zap.Int("listeners", len(groups)),
	)

	return func() {
		for i, g := range groups {
			root.RemoveEventListener(g.eventType, ids[i])
		}
	}, nil
}

// bindings returns the parsed event map of decl's type, parsing it on first
// use.
func (b *Binder) bindings(decl Declarer) ([]Binding, error) {
	key := reflect.TypeOf(decl)

	b.mu.Lock()
	cached, ok := b.parsed[key]
	b.mu.Unlock()
	if ok {
		return cached, nil
	}

	parsed, err := Parse(decl.Events())
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.parsed[key] = parsed
	b.mu.Unlock()
	return parsed, nil
}

// listen builds the single native listener for one event type.
//
// Delegated handlers run first, nearest match first. Handlers matched at the
// same depth all run before StopPropagation takes effect;
// StopImmediatePropagation skips every handler after the current one. Direct
// handlers run last unless propagation was stopped.
func listen(root dom.Element, g *typeGroup) dom.Listener {
	type hit struct {
		depth int
		fn    func(dom.Event)
	}

	return func(ev dom.Event) {
		if len(g.delegated) > 0 {
			var hits []hit
			for _, d := range g.delegated {
				depth := 0
				for cur := ev.Target(); cur != nil && cur != root; cur = cur.Parent() {
					if ok, err := cur.Matches(d.Selector); err == nil && ok {
						hits = append(hits, hit{depth: depth, fn: d.fn})
						break
					}
					depth++
				}
			}
			sort.SliceStable(hits, func(i, j int) bool { return hits[i].depth < hits[j].depth })

			for i, h := range hits {
				h.fn(ev)
				if ev.ImmediatePropagationStopped() {
					return
				}
				last := i == len(hits)-1 || hits[i+1].depth != h.depth
				if last && ev.PropagationStopped() {
					return
				}
			}
		}

		for _, d := range g.direct {
			d.fn(ev)
			if ev.ImmediatePropagationStopped() {
				return
			}
		}
	}
}
