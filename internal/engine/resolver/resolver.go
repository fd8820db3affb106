// Package resolver implements the build target resolver.
//
// A resolution derives a build profile from the environment, selects a
// bundling policy for every requested dependency and assembles the result into
// an immutable build plan. It has no side effects apart from logging.
package resolver

import (
	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/bundleplan/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver turns a project and an invocation into a resolution.
type Resolver struct {
	logger ports.Logger
}

// New creates a new Resolver.
func New(logger ports.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve runs a full resolution for the project.
func (r *Resolver) Resolve(project *domain.Project, in domain.ResolveInput) (*domain.Resolution, error) {
	profile, err := ResolveProfile(in.Env, in.Overrides, project.SubPath)
	if err != nil {
		return nil, err
	}

	globalsAvailable, err := ResolveGlobalsAvailable(in.Env, in.Overrides)
	if err != nil {
		return nil, err
	}

	specs, err := project.Dependencies.Select(in.Modules)
	if err != nil {
		return nil, err
	}

	format := project.Output.Format
	if in.Overrides.Format != "" {
		format, err = domain.ParseFormat(in.Overrides.Format)
		if err != nil {
			return nil, zerr.With(err, "source", "flag --format")
		}
	}

	decisions, diagnostics := SelectPolicies(profile, globalsAvailable, specs)

	plan, err := AssemblePlan(ResolveBasePath(profile), decisions, format)
	if err != nil {
		return nil, err
	}

	fingerprint, err := plan.Fingerprint()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to fingerprint build plan")
	}

	r.report(diagnostics)

	return &domain.Resolution{
		Profile:          profile,
		GlobalsAvailable: globalsAvailable,
		Plan:             plan,
		Fingerprint:      fingerprint,
		Diagnostics:      diagnostics,
	}, nil
}

func (r *Resolver) report(diagnostics []domain.Diagnostic) {
	for _, d := range diagnostics {
		r.logger.Diagnostic(d)
	}
}
