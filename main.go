package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/km-arc/go-sprinkles/app"
	framework "github.com/km-arc/go-sprinkles/framework/app"
	"github.com/km-arc/go-sprinkles/framework/config"
)

func main() {
	application, err := framework.New() // loads .env automatically
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer func() { _ = application.Logger().Sync() }()

	if err := application.Register(&app.AppServiceProvider{
		Greeting: config.Get("APP_GREETING", ""),
	}); err != nil {
		log.Fatalf("register: %v", err)
	}

	if err := application.Run(app.Page); err != nil {
		application.Logger().Fatal("server stopped", zap.Error(err))
	}
}
