package resolver

import (
	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/zerr"
)

// SelectPolicies decides the policy of every spec under the given profile.
// It returns one decision and one diagnostic per spec, in input order.
func SelectPolicies(
	profile domain.BuildProfile,
	globalsAvailable bool,
	specs []domain.DependencySpec,
) ([]domain.ExternalizationDecision, []domain.Diagnostic) {
	decisions := make([]domain.ExternalizationDecision, 0, len(specs))
	diagnostics := make([]domain.Diagnostic, 0, len(specs))

	for _, spec := range specs {
		policy, reason := choosePolicy(profile.Mode, globalsAvailable, spec.DefaultPolicy)

		decision := domain.ExternalizationDecision{
			Dependency: spec,
			Policy:     policy,
		}
		if policy.IsExternal() && spec.GlobalName != "" {
			decision.GlobalBinding = &domain.GlobalBinding{
				ExportedAs: spec.ModuleID,
				GlobalName: spec.GlobalName,
			}
		}
		decisions = append(decisions, decision)

		diag := domain.Diagnostic{
			ModuleID:       spec.ModuleID,
			DeclaredPolicy: spec.DefaultPolicy,
			ChosenPolicy:   policy,
			Reason:         reason,
		}
		if profile.Mode == domain.ModeProductionApp && spec.DefaultPolicy.IsExternal() && !policy.IsExternal() {
			diag.Downgraded = true
			diag.Warning = zerr.With(
				zerr.With(zerr.With(domain.ErrPolicyDowngraded, "module", spec.ModuleID), "declared", spec.DefaultPolicy.String()),
				"reason", reason,
			)
		}
		diagnostics = append(diagnostics, diag)
	}

	return decisions, diagnostics
}

func choosePolicy(mode domain.Mode, globalsAvailable bool, declared domain.Policy) (domain.Policy, string) {
	switch mode {
	case domain.ModeDevelopment:
		return domain.PolicyBundle, domain.ReasonDevelopment
	case domain.ModeLibraryBuild:
		return declared, domain.ReasonLibraryDeclared
	}

	switch declared {
	case domain.PolicyExternalGlobal:
		if globalsAvailable {
			return domain.PolicyExternalGlobal, domain.ReasonRuntimeGlobalConfirmed
		}
		return domain.PolicyBundle, domain.ReasonRuntimeGlobalUnconfirmed
	case domain.PolicyExternalShim:
		return domain.PolicyBundle, domain.ReasonShimNotAllowedInApp
	default:
		return domain.PolicyBundle, domain.ReasonDeclaredBundle
	}
}
