package resolver

import "go.trai.ch/bundleplan/internal/core/domain"

// ResolveBasePath returns the public base URL for the profile.
// Development builds are always served relative to the dev server root.
func ResolveBasePath(profile domain.BuildProfile) string {
	if profile.Mode == domain.ModeDevelopment || profile.Deployment.IsRoot() {
		return domain.RelativeBasePath
	}
	return profile.Deployment.SubPath()
}
