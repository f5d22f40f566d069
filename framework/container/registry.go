package container

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// ── Definitions ───────────────────────────────────────────────────────────────

// Kind tags what a Definition builds.
type Kind int

const (
	// KindValue is a pre-built value, injected as is.
	KindValue Kind = iota
	// KindService is a lazily built singleton.
	KindService
	// KindController is built fresh for every anchor element.
	KindController
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindService:
		return "service"
	case KindController:
		return "controller"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ServiceFactory builds a service from its resolved dependencies.
// The returned value is memoized by the Injector.
type ServiceFactory func(deps ...any) (any, error)

// Constructor builds one controller instance from the resolved dependencies
// followed by the caller-supplied arguments.
type Constructor func(args ...any) (any, error)

// ControllerFactory receives the resolved dependencies of a controller and
// returns its Constructor. It is invoked once per instantiation.
type ControllerFactory func(deps ...any) Constructor

// Definition is a named, registered description of how to build a value,
// service or controller.
type Definition struct {
	Name         string
	Kind         Kind
	Dependencies []string

	Value      any
	Service    ServiceFactory
	Controller ControllerFactory
}

func (d *Definition) validate() error {
	if d.Name == "" {
		return &InvalidDefinitionError{Reason: "name is empty"}
	}
	switch d.Kind {
	case KindValue:
		if len(d.Dependencies) > 0 {
			return &InvalidDefinitionError{Name: d.Name, Reason: "values cannot declare dependencies"}
		}
	case KindService:
		if d.Service == nil {
			return &InvalidDefinitionError{Name: d.Name, Reason: "service factory is nil"}
		}
	case KindController:
		if d.Controller == nil {
			return &InvalidDefinitionError{Name: d.Name, Reason: "controller factory is nil"}
		}
	default:
		return &InvalidDefinitionError{Name: d.Name, Reason: fmt.Sprintf("unknown %s", d.Kind)}
	}
	for _, dep := range d.Dependencies {
		if dep == "" {
			return &InvalidDefinitionError{Name: d.Name, Reason: "empty dependency token"}
		}
	}
	return nil
}

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry stores definitions for values, services and controllers in one
// shared namespace. It only inserts and looks up; building is the Injector's
// job.
//
//	r := container.NewRegistry()
//	r.Value("apiURL", "https://example.test")
//	r.Service("http", []string{"apiURL"}, func(deps ...any) (any, error) {
//	    return api.NewClient(deps[0].(string)), nil
//	})
//	r.Controller("search", []string{"http"}, func(deps ...any) container.Constructor {
//	    client := deps[0].(*api.Client)
//	    return func(args ...any) (any, error) { return newSearch(client, args[1].(dom.Element)), nil }
//	})
type Registry struct {
	mu sync.RWMutex

	// name → definition
	definitions map[string]*Definition

	// alias → name
	aliases map[string]string

	// contextual: when[requester][token] = replacement token
	contextual map[string]map[string]string

	// consulted by Lookup before reporting an unknown token
	missing []MissingHook
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[string]*Definition),
		aliases:     make(map[string]string),
		contextual:  make(map[string]map[string]string),
	}
}

// Value registers a pre-built value.
func (r *Registry) Value(name string, value any) {
	r.put(&Definition{Name: name, Kind: KindValue, Value: value})
}

// Service registers a lazily built singleton. deps may be nil.
func (r *Registry) Service(name string, deps []string, factory ServiceFactory) {
	r.put(&Definition{Name: name, Kind: KindService, Dependencies: copyTokens(deps), Service: factory})
}

// Controller registers a controller. deps may be nil.
func (r *Registry) Controller(name string, deps []string, factory ControllerFactory) {
	r.put(&Definition{Name: name, Kind: KindController, Dependencies: copyTokens(deps), Controller: factory})
}

// Define validates and stores an arbitrary definition. An existing definition
// with the same name is replaced.
func (r *Registry) Define(def *Definition) error {
	if def == nil {
		return &InvalidDefinitionError{Reason: "definition is nil"}
	}
	if err := def.validate(); err != nil {
		return err
	}
	stored := *def
	stored.Dependencies = copyTokens(def.Dependencies)
	r.put(&stored)
	return nil
}

func (r *Registry) put(def *Definition) {
	if err := def.validate(); err != nil {
		panic(err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Name] = def
}

// Alias registers an alternative token for name.
func (r *Registry) Alias(name, alias string) {
	if name == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = r.canonical(name)
}

// Lookup returns the definition registered under name (or one of its aliases).
func (r *Registry) Lookup(name string) (*Definition, error) {
	if def, ok := r.find(name); ok {
		return def, nil
	}

	r.mu.RLock()
	hooks := slices.Clone(r.missing)
	r.mu.RUnlock()
	for _, hook := range hooks {
		loaded, err := hook(name)
		if err != nil {
			return nil, err
		}
		if loaded {
			if def, ok := r.find(name); ok {
				return def, nil
			}
		}
	}
	return nil, &UnknownDependencyError{Token: name}
}

func (r *Registry) find(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[r.canonical(name)]
	return def, ok
}

// Has reports whether name is registered, without consulting OnMissing hooks.
func (r *Registry) Has(name string) bool {
	_, ok := r.find(name)
	return ok
}

// Names returns all registered definition names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MissingHook is called by Lookup for a name with no definition. It returns
// true after registering a definition for the name. A non-nil error is
// returned from Lookup as is.
type MissingHook func(name string) (bool, error)

// OnMissing registers a hook that Lookup calls for unknown names.
func (r *Registry) OnMissing(hook MissingHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.missing = append(r.missing, hook)
}

// forget removes the definitions registered under names.
func (r *Registry) forget(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		delete(r.definitions, name)
	}
}

// canonical resolves an alias to its name (must hold mu).
func (r *Registry) canonical(name string) string {
	if target, ok := r.aliases[name]; ok {
		return target
	}
	return name
}

// ── Contextual tokens ─────────────────────────────────────────────────────────

// When starts a contextual override: when requester asks for a token, another
// definition is injected instead.
//
//	r.When("todo-list").Needs("store").Give("sessionStore")
func (r *Registry) When(requester string) *ContextualBuilder {
	return &ContextualBuilder{registry: r, requester: requester}
}

// contextualToken returns the token requester should receive for token.
func (r *Registry) contextualToken(requester, token string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.contextual[requester]; ok {
		if replacement, ok := m[token]; ok {
			return replacement
		}
	}
	return token
}

func copyTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	return append([]string(nil), tokens...)
}
