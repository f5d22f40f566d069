package container

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related definitions.
//
// Register only inserts definitions; nothing is built at that point. Boot runs
// after all eager providers are registered and may resolve services.
//
//	type StoreProvider struct{ container.BaseProvider }
//
//	func (p *StoreProvider) Register(r *container.Registry) {
//	    r.Service("clock", nil, func(...any) (any, error) { return services.NewClock(), nil })
//	}
type ServiceProvider interface {
	// Register inserts definitions into the registry.
	Register(r *Registry)

	// Boot is called after all providers are registered.
	Boot(i *Injector) error

	// Provides returns the tokens a deferred provider registers.
	Provides() []string

	// IsDeferred returns true if Register should wait until one of the
	// Provides() tokens is first looked up.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot, Provides and
// IsDeferred. Embed it and implement Register.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Injector) error { return nil }
func (p *BaseProvider) Provides() []string     { return nil }
func (p *BaseProvider) IsDeferred() bool       { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders, including deferred
// providers that register on first lookup of one of their tokens.
type ProviderRegistry struct {
	injector *Injector

	mu         sync.Mutex
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // token → provider
	loaded     []ServiceProvider          // deferred, registered before Boot
	failed     map[string]error           // token → boot error of its provider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a provider registry bound to i and its Registry.
func NewProviderRegistry(i *Injector) *ProviderRegistry {
	p := &ProviderRegistry{
		injector:   i,
		deferred:   make(map[string]ServiceProvider),
		failed:     make(map[string]error),
		registered: make(map[ServiceProvider]bool),
	}
	i.Registry().OnMissing(p.loadDeferred)
	return p
}

// Register adds a provider and calls its Register method unless it is
// deferred. A provider added after Boot is booted immediately.
func (p *ProviderRegistry) Register(provider ServiceProvider) error {
	p.mu.Lock()
	if p.registered[provider] {
		p.mu.Unlock()
		return nil
	}
	p.registered[provider] = true

	if provider.IsDeferred() {
		for _, token := range provider.Provides() {
			p.deferred[token] = provider
		}
		p.mu.Unlock()
		return nil
	}

	p.eager = append(p.eager, provider)
	booted := p.booted
	p.mu.Unlock()

	provider.Register(p.injector.Registry())
	if booted {
		return provider.Boot(p.injector)
	}
	return nil
}

// loadDeferred registers the deferred provider owning token, if any. When
// the registry is already booted the provider is booted too; if that fails
// its definitions are withdrawn and every later lookup of its tokens reports
// the same ProviderError.
func (p *ProviderRegistry) loadDeferred(token string) (bool, error) {
	p.mu.Lock()
	if err, ok := p.failed[token]; ok {
		p.mu.Unlock()
		return false, err
	}
	provider, ok := p.deferred[token]
	if !ok {
		p.mu.Unlock()
		return false, nil
	}
	tokens := provider.Provides()
	for _, t := range tokens {
		delete(p.deferred, t)
	}
	booted := p.booted
	if !booted {
		p.loaded = append(p.loaded, provider)
	}
	p.mu.Unlock()

	provider.Register(p.injector.Registry())
	if !booted {
		return true, nil
	}
	if err := provider.Boot(p.injector); err != nil {
		p.injector.Registry().forget(tokens...)
		p.mu.Lock()
		for _, t := range tokens {
			p.failed[t] = &ProviderError{Token: t, Provider: fmt.Sprintf("%T", provider), Err: err}
		}
		failure := p.failed[token]
		p.mu.Unlock()
		return false, failure
	}
	return true, nil
}

// Boot calls Boot on all eager providers, then on deferred providers that
// were loaded before Boot, stopping at the first error. Subsequent calls are
// no-ops.
func (p *ProviderRegistry) Boot() error {
	p.mu.Lock()
	if p.booted {
		p.mu.Unlock()
		return nil
	}
	p.booted = true
	providers := append(slices.Clone(p.eager), p.loaded...)
	p.loaded = nil
	p.mu.Unlock()

	for _, provider := range providers {
		if err := provider.Boot(p.injector); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true if Boot has been called.
func (p *ProviderRegistry) Booted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.booted
}

// Providers returns the registered eager providers.
func (p *ProviderRegistry) Providers() []ServiceProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.eager)
}

// Pending returns the tokens whose deferred providers have not loaded yet,
// sorted.
func (p *ProviderRegistry) Pending() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.deferred))
	for token := range p.deferred {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}
