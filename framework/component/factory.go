// Package component instantiates controllers: it resolves their
// dependencies, constructs them for an anchor element and binds their event
// maps.
package component

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/km-arc/go-sprinkles/framework/container"
	"github.com/km-arc/go-sprinkles/framework/dom"
	"github.com/km-arc/go-sprinkles/framework/events"
)

// Anchor tags the element a controller is bound to among Instantiate's
// arguments. The controller's constructor receives the bare dom.Element at
// the same position.
type Anchor struct {
	Element dom.Element
}

// At tags el as the anchor element.
func At(el dom.Element) Anchor { return Anchor{Element: el} }

// Mount is an instantiated controller together with its listeners.
type Mount struct {
	Name     string
	Instance any
	Element  dom.Element

	// Detach removes the listeners attached for Instance.
	Detach func()
}

// Factory builds controller instances.
type Factory struct {
	registry *container.Registry
	injector *container.Injector
	binder   *events.Binder
	logger   *zap.Logger
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithBinder replaces the default event binder.
func WithBinder(b *events.Binder) Option {
	return func(f *Factory) {
		if b != nil {
			f.binder = b
		}
	}
}

// NewFactory creates a Factory resolving through i.
func NewFactory(i *container.Injector, opts ...Option) *Factory {
	f := &Factory{
		registry: i.Registry(),
		injector: i,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.binder == nil {
		f.binder = events.NewBinder(events.WithLogger(f.logger))
	}
	return f
}

// Instantiate builds a new instance of the controller name. Exactly one of
// args must be an Anchor. The constructor receives the resolved dependencies
// followed by args, with the anchor unwrapped in place:
//
//	f.Instantiate("tabs", "horizontal", component.At(el), 2)
//	// constructor(dep1, ..., depN, "horizontal", el, 2)
//
// The event map is bound before Instantiate returns. On error no instance is
// returned.
func (f *Factory) Instantiate(name string, args ...any) (any, error) {
	m, err := f.Mount(name, args...)
	if err != nil {
		return nil, err
	}
	return m.Instance, nil
}

// Mount is Instantiate returning the listeners' Detach func as well.
func (f *Factory) Mount(name string, args ...any) (*Mount, error) {
	def, err := f.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	if def.Kind != container.KindController {
		return nil, &container.InvalidDependencyKindError{Token: name, Kind: def.Kind}
	}

	el, forwarded, err := unwrapAnchor(name, args)
	if err != nil {
		return nil, err
	}

	deps, err := f.injector.Resolve(name, def.Dependencies)
	if err != nil {
		return nil, err
	}

	ctor := def.Controller(deps...)
	if ctor == nil {
		return nil, &ConstructorError{Controller: name, Err: fmt.Errorf("factory returned a nil constructor")}
	}

	params := make([]any, 0, len(deps)+len(forwarded))
	params = append(params, deps...)
	params = append(params, forwarded...)

	instance, err := ctor(params...)
	if err != nil {
		return nil, &ConstructorError{Controller: name, Err: err}
	}
	if instance == nil {
		return nil, &ConstructorError{Controller: name, Err: fmt.Errorf("constructor returned nil")}
	}

	detach, err := f.binder.Bind(name, instance, el)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("controller instantiated",
		zap.String("controller", name),
		zap.String("element", el.Tag()),
		zap.Int("dependencies", len(deps)),
	)

	return &Mount{Name: name, Instance: instance, Element: el, Detach: detach}, nil
}

// unwrapAnchor finds the single Anchor among args and returns a copy of args
// with the anchor replaced by its element.
func unwrapAnchor(name string, args []any) (dom.Element, []any, error) {
	var el dom.Element
	found := 0
	forwarded := make([]any, len(args))
	for i, arg := range args {
		if a, ok := arg.(Anchor); ok {
			found++
			el = a.Element
			forwarded[i] = a.Element
			continue
		}
		forwarded[i] = arg
	}

	switch {
	case found == 0 || (found == 1 && isNil(el)):
		return nil, nil, &MissingElementArgumentError{Controller: name}
	case found > 1:
		return nil, nil, &AmbiguousElementArgumentError{Controller: name, Count: found}
	}
	return el, forwarded, nil
}

// isNil reports whether el is nil or an interface holding a nil pointer.
func isNil(el dom.Element) bool {
	if el == nil {
		return true
	}
	v := reflect.ValueOf(el)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
