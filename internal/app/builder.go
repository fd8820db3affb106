package app

import "go.trai.ch/bundleplan/internal/core/ports"

// LogFormatter switches the log output format by name.
type LogFormatter interface {
	SetFormat(format string) error
}

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger

	// LogFormat is nil when the logger has a fixed format.
	LogFormat LogFormatter
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger) *Components {
	c := &Components{
		App:    app,
		Logger: logger,
	}
	if lf, ok := logger.(LogFormatter); ok {
		c.LogFormat = lf
	}
	return c
}
