package resolver

import (
	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/zerr"
)

// AssemblePlan composes the base path, decisions and output format into a
// build plan and checks the plan's cross-field invariants.
func AssemblePlan(
	basePath string,
	decisions []domain.ExternalizationDecision,
	format domain.Format,
) (*domain.BuildPlan, error) {
	plan := &domain.BuildPlan{
		BasePath:     basePath,
		Decisions:    append([]domain.ExternalizationDecision(nil), decisions...),
		OutputFormat: format,
	}

	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func validatePlan(plan *domain.BuildPlan) error {
	if !domain.IsValidBasePath(plan.BasePath) {
		return zerr.With(zerr.With(domain.ErrInconsistentPlan, "field", "basePath"), "value", plan.BasePath)
	}

	for _, d := range plan.Decisions {
		if d.Policy != domain.PolicyExternalGlobal {
			continue
		}
		if d.GlobalBinding == nil || d.GlobalBinding.GlobalName == "" {
			return zerr.With(zerr.With(domain.ErrInconsistentPlan, "module", d.Dependency.ModuleID), "field", "globalBinding")
		}
	}

	if plan.HasExternals() && plan.OutputFormat == domain.FormatCommonJS {
		return zerr.With(zerr.With(domain.ErrInconsistentPlan, "field", "outputFormat"), "value", plan.OutputFormat.String())
	}

	return nil
}
