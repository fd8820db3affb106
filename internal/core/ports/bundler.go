package ports

import (
	"context"

	"go.trai.ch/bundleplan/internal/core/domain"
)

// Bundler turns a build plan into bundled output.
//
//go:generate mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Bundle builds the project's entry points as directed by the plan.
	Bundle(ctx context.Context, project *domain.Project, plan *domain.BuildPlan) (*domain.BundleResult, error)
}
