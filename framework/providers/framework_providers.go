package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-sprinkles/framework/component"
	"github.com/km-arc/go-sprinkles/framework/config"
	"github.com/km-arc/go-sprinkles/framework/container"
	"github.com/km-arc/go-sprinkles/framework/dom"
	"github.com/km-arc/go-sprinkles/framework/playground"
	"github.com/km-arc/go-sprinkles/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider registers the loaded configuration.
//
// Definitions:
//   - "config"         value  *config.Config
//   - "configuration"  alias of "config"
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(r *container.Registry) {
	r.Value("config", p.Config)
	r.Alias("config", "configuration")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider registers the application logger.
//
// Definitions:
//   - "logger"  value  *zap.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(r *container.Registry) {
	r.Value("logger", p.Logger)
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Definitions:
//   - "router"  service  *routing.Router  (needs "logger")
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(r *container.Registry) {
	r.Service("router", []string{"logger"}, func(deps ...any) (any, error) {
		return routing.New(deps[0].(*zap.Logger)), nil
	})
}

// ── PlaygroundServiceProvider ─────────────────────────────────────────────────

// PlaygroundServiceProvider registers the playground server. It is deferred:
// nothing is registered until "playground" is first looked up, which happens
// only when the application serves HTTP.
//
// Definitions:
//   - "playground"  service  *playground.Server  (needs "document", "mounts", "logger")
type PlaygroundServiceProvider struct {
	container.BaseProvider
}

func (p *PlaygroundServiceProvider) IsDeferred() bool   { return true }
func (p *PlaygroundServiceProvider) Provides() []string { return []string{"playground"} }

func (p *PlaygroundServiceProvider) Register(r *container.Registry) {
	r.Service("playground", []string{"document", "mounts", "logger"}, func(deps ...any) (any, error) {
		return playground.New(
			deps[0].(*dom.Document),
			deps[1].([]*component.Mount),
			deps[2].(*zap.Logger),
		), nil
	})
}
