package container

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Injector resolves dependency tokens against a Registry. Services are built
// on first use and memoized until their definition is replaced in the
// Registry. Values are returned as registered. Controllers cannot be
// injected.
//
// The Injector is meant for a single thread of control. Its maps are guarded,
// but the build stack used for cycle detection is shared by all callers.
type Injector struct {
	registry *Registry
	logger   *zap.Logger

	mu sync.Mutex

	// service name → built instance
	instances map[string]built

	// services currently under construction, outermost first
	building []string

	// fired once per built service
	afterResolving []func(name string, instance any)
}

// built is a memoized service together with the definition it came from.
type built struct {
	def   *Definition
	value any
}

// Option configures an Injector.
type Option func(*Injector)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(i *Injector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewInjector creates an Injector over r.
func NewInjector(r *Registry, opts ...Option) *Injector {
	i := &Injector{
		registry:  r,
		logger:    zap.NewNop(),
		instances: make(map[string]built),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Registry returns the registry the Injector resolves against.
func (i *Injector) Registry() *Registry { return i.registry }

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve resolves tokens in order on behalf of requester and returns one
// value per token. Resolution is depth-first, left to right. On error no
// value is returned and no partially built service is memoized.
func (i *Injector) Resolve(requester string, tokens []string) ([]any, error) {
	values := make([]any, len(tokens))
	for idx, token := range tokens {
		v, err := i.resolve(requester, token)
		if err != nil {
			return nil, err
		}
		values[idx] = v
	}
	return values, nil
}

// Get resolves a single token.
func (i *Injector) Get(token string) (any, error) {
	return i.resolve("", token)
}

func (i *Injector) resolve(requester, token string) (any, error) {
	if requester != "" {
		token = i.registry.contextualToken(requester, token)
	}

	def, err := i.registry.Lookup(token)
	if err != nil {
		var unknown *UnknownDependencyError
		if errors.As(err, &unknown) {
			unknown.Requester = requester
		}
		return nil, err
	}

	switch def.Kind {
	case KindValue:
		return def.Value, nil
	case KindService:
		return i.build(def)
	default:
		return nil, &InvalidDependencyKindError{Token: token, Kind: def.Kind, Requester: requester}
	}
}

// build constructs and memoizes a service. An instance built from an older
// definition of the same name is discarded.
func (i *Injector) build(def *Definition) (any, error) {
	i.mu.Lock()
	if b, ok := i.instances[def.Name]; ok && b.def == def {
		i.mu.Unlock()
		return b.value, nil
	}
	for idx, name := range i.building {
		if name == def.Name {
			path := append(append([]string(nil), i.building[idx:]...), def.Name)
			i.mu.Unlock()
			return nil, &CircularDependencyError{Path: path}
		}
	}
	i.building = append(i.building, def.Name)
	i.mu.Unlock()
	defer i.pop()

	deps, err := i.Resolve(def.Name, def.Dependencies)
	if err != nil {
		return nil, err
	}

	inst, err := def.Service(deps...)
	if err != nil {
		return nil, &ServiceError{Name: def.Name, Err: err}
	}

	i.mu.Lock()
	i.instances[def.Name] = built{def: def, value: inst}
	callbacks := slices.Clone(i.afterResolving)
	i.mu.Unlock()

	i.logger.Debug("service built",
		zap.String("service", def.Name),
		zap.Strings("dependencies", def.Dependencies),
	)
	for _, cb := range callbacks {
		cb(def.Name, inst)
	}
	return inst, nil
}

func (i *Injector) pop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.building = i.building[:len(i.building)-1]
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Resolved reports whether the service currently registered under name has
// been built.
func (i *Injector) Resolved(name string) bool {
	def, ok := i.registry.find(name)
	if !ok {
		return false
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	b, ok := i.instances[def.Name]
	return ok && b.def == def
}

// AfterResolving registers a callback fired once after each service is built.
func (i *Injector) AfterResolving(cb func(name string, instance any)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.afterResolving = append(i.afterResolving, cb)
}

// Resolve is a generic helper that calls Get and type-asserts the result.
//
//	store, err := container.Resolve[*services.TodoStore](injector, "todoStore")
func Resolve[T any](i *Injector, token string) (T, error) {
	var zero T
	instance, err := i.Get(token)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Token:    token,
			Expected: reflect.TypeOf((*T)(nil)).Elem().String(),
			Got:      fmt.Sprintf("%T", instance),
		}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](i *Injector, token string) T {
	typed, err := Resolve[T](i, token)
	if err != nil {
		panic(err.Error())
	}
	return typed
}
