package app

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-sprinkles/framework/component"
	"github.com/km-arc/go-sprinkles/framework/config"
	"github.com/km-arc/go-sprinkles/framework/container"
	"github.com/km-arc/go-sprinkles/framework/dom"
	"github.com/km-arc/go-sprinkles/framework/logging"
	"github.com/km-arc/go-sprinkles/framework/playground"
	"github.com/km-arc/go-sprinkles/framework/providers"
	"github.com/km-arc/go-sprinkles/framework/routing"
)

// Application wires the registry, injector, controller factory and service
// providers together. User code registers its values, services and
// controllers through providers (or directly on Registry) and then mounts a
// page.
type Application struct {
	Registry  *container.Registry
	Injector  *container.Injector
	Factory   *component.Factory
	Providers *container.ProviderRegistry

	config *config.Config
	logger *zap.Logger
}

// New loads configuration, builds the logger and registers the framework
// providers.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	registry := container.NewRegistry()
	injector := container.NewInjector(registry, container.WithLogger(logger))

	a := &Application{
		Registry:  registry,
		Injector:  injector,
		Factory:   component.NewFactory(injector, component.WithLogger(logger)),
		Providers: container.NewProviderRegistry(injector),
		config:    cfg,
		logger:    logger,
	}

	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggingServiceProvider{Logger: logger},
		&providers.RoutingServiceProvider{},
		&providers.PlaygroundServiceProvider{},
	} {
		if err := a.Register(p); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot phase on all providers.
func (a *Application) Boot() error {
	if err := a.Providers.Boot(); err != nil {
		return err
	}
	a.logger.Debug("providers booted",
		zap.Int("providers", len(a.Providers.Providers())),
		zap.Strings("deferred", a.Providers.Pending()),
	)
	return nil
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config { return a.config }

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.logger }

// Router resolves the "router" service.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Injector, "router")
}

// LoadPage parses the page named by SPRINKLES_PAGE, or fallback when unset.
func (a *Application) LoadPage(fallback string) (*dom.Document, error) {
	path := a.config.Runtime.Page
	if path == "" {
		return dom.ParseString(fallback)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	return dom.Parse(f)
}

// Mount boots the providers if needed and mounts every marked element of
// doc. The document is registered as "document" before any controller is
// built; the mounts are registered as "mounts" afterwards. Elements that fail
// to mount are reported in the returned error; the others stay mounted.
func (a *Application) Mount(doc *dom.Document) ([]*component.Mount, error) {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return nil, fmt.Errorf("boot providers: %w", err)
		}
	}

	a.Registry.Value("document", doc)
	mounts, err := a.Factory.Bootstrap(doc.Root(), a.config.Runtime.Marker)
	a.Registry.Value("mounts", mounts)
	return mounts, err
}

// Handler loads and mounts the page and returns the router serving the
// playground for it. The routes go on the shared "router" service, so call
// it once per Application.
func (a *Application) Handler(fallbackPage string) (http.Handler, error) {
	doc, err := a.LoadPage(fallbackPage)
	if err != nil {
		return nil, err
	}
	mounts, err := a.Mount(doc)
	if err != nil {
		a.logger.Warn("some controllers failed to mount", zap.Error(err))
	}

	router, err := a.Router()
	if err != nil {
		return nil, err
	}
	server, err := container.Resolve[*playground.Server](a.Injector, "playground")
	if err != nil {
		return nil, err
	}
	server.Routes(router)

	a.logger.Info("page mounted", zap.Int("controllers", len(mounts)))
	return router, nil
}

// Run serves the playground for the page on APP_PORT.
func (a *Application) Run(fallbackPage string) error {
	handler, err := a.Handler(fallbackPage)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.config.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: time.Duration(a.config.App.ReadTimeout) * time.Second,
	}
	if a.IsProduction() && a.IsDebug() {
		a.logger.Warn("APP_DEBUG is enabled in production")
	}
	a.logger.Info("playground listening",
		zap.String("app", a.config.App.Name),
		zap.String("addr", srv.Addr),
		zap.String("env", a.config.App.Env),
	)
	return srv.ListenAndServe()
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.config.App.Env }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsDebug() bool       { return a.config.App.Debug }
