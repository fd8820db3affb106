// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/bundleplan/internal/core/domain"

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
	// Diagnostic reports the policy chosen for one dependency.
	// Downgrades are reported at warning level.
	Diagnostic(d domain.Diagnostic)
}
