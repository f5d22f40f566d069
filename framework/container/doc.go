// Package container provides the name-keyed dependency injection core of the
// component runtime: a Registry of definitions and an Injector that builds
// them.
//
// # Definitions
//
// Every definition lives in one namespace and is one of three kinds:
//
//	// Value: injected as registered
//	r.Value("apiURL", "https://example.test")
//
//	// Service: built on first use, then shared
//	r.Service("clock", nil, func(...any) (any, error) { return services.NewClock(), nil })
//	r.Service("todoStore", []string{"clock"}, func(deps ...any) (any, error) {
//	    return services.NewTodoStore(deps[0].(*services.Clock)), nil
//	})
//
//	// Controller: built per anchor element by component.Factory
//	r.Controller("todo-list", []string{"todoStore"}, func(deps ...any) container.Constructor {
//	    store := deps[0].(*services.TodoStore)
//	    return func(args ...any) (any, error) {
//	        return controllers.NewTodoList(store, args[1].(dom.Element)), nil
//	    }
//	})
//
// Registering a name twice replaces the earlier definition. Nothing is built
// at registration time.
//
// # Resolving
//
//	inj := container.NewInjector(r)
//	deps, err := inj.Resolve("todo-list", []string{"todoStore", "apiURL"})
//
//	// Generic
//	store, err := container.Resolve[*services.TodoStore](inj, "todoStore")
//
// A service is built at most once per Injector, and only when some
// resolution reaches it. Resolution order is depth-first, left to right.
// Errors are returned as *UnknownDependencyError, *CircularDependencyError,
// *InvalidDependencyKindError or *ServiceError.
//
// # Contextual tokens
//
//	r.When("todo-list").Needs("store").Give("todoStore")
//
// # Service Providers
//
//	type AppProvider struct{ container.BaseProvider }
//
//	func (p *AppProvider) Register(r *container.Registry) { ... }
//
//	providers := container.NewProviderRegistry(inj)
//	providers.Register(&AppProvider{})
//	providers.Boot()
//
// A provider whose IsDeferred returns true is registered only when one of its
// Provides() tokens is first looked up.
package container
