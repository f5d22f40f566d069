package app

import (
	_ "embed"

	"go.uber.org/zap"

	"github.com/km-arc/go-sprinkles/app/controllers"
	"github.com/km-arc/go-sprinkles/app/services"
	"github.com/km-arc/go-sprinkles/framework/container"
)

// Page is the built-in example page, used when SPRINKLES_PAGE is unset.
//
//go:embed views/index.html
var Page string

// AppServiceProvider registers the example application's definitions.
//
// Definitions:
//   - "greeting"      value       string
//   - "clock"         service     *services.Clock
//   - "counterStore"  service     *services.CounterStore
//   - "todoStore"     service     *services.TodoStore     (needs "clock")
//   - "analytics"     service     *services.Analytics     (needs "logger")
//   - "counter"       controller  *controllers.Counter    (needs "counterStore")
//   - "todo-list"     controller  *controllers.TodoList   (needs "todoStore", "document", "greeting")
type AppServiceProvider struct {
	container.BaseProvider
	Greeting string
}

func (p *AppServiceProvider) Register(r *container.Registry) {
	greeting := p.Greeting
	if greeting == "" {
		greeting = "Things to do"
	}
	r.Value("greeting", greeting)

	r.Service("clock", nil, func(...any) (any, error) {
		return services.NewClock(), nil
	})
	r.Service("counterStore", nil, func(...any) (any, error) {
		return services.NewCounterStore(), nil
	})
	r.Service("todoStore", []string{"clock"}, func(deps ...any) (any, error) {
		return services.NewTodoStore(deps[0].(*services.Clock)), nil
	})
	r.Service("analytics", []string{"logger"}, func(deps ...any) (any, error) {
		return services.NewAnalytics(deps[0].(*zap.Logger)), nil
	})

	r.Controller("counter", []string{"counterStore"}, controllers.CounterFactory)
	r.Controller("todo-list", []string{"todoStore", "document", "greeting"}, controllers.TodoListFactory)
}
