package services

import "go.uber.org/zap"

// Analytics records page events. Nothing on the example page depends on it,
// so it is never built.
type Analytics struct {
	logger *zap.Logger
	events []string
}

func NewAnalytics(logger *zap.Logger) *Analytics {
	logger.Info("analytics started")
	return &Analytics{logger: logger}
}

// Track records one event name.
func (a *Analytics) Track(name string) {
	a.events = append(a.events, name)
	a.logger.Debug("tracked", zap.String("event", name))
}

// Tracked returns the recorded event names.
func (a *Analytics) Tracked() []string {
	return append([]string(nil), a.events...)
}
