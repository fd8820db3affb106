package resolver

import (
	"strconv"

	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/zerr"
)

// Sources of a deployment path, reported on InvalidDeployment errors.
const (
	sourceBaseFlag      = "flag --base"
	sourceConfigSubPath = "config deployment.subPath"
)

// ResolveProfile derives the build profile from the environment, the command
// line overrides and the configured production sub-path.
func ResolveProfile(env map[string]string, o domain.Overrides, configuredSubPath string) (domain.BuildProfile, error) {
	mode, err := resolveMode(env, o)
	if err != nil {
		return domain.BuildProfile{}, err
	}

	deployment, err := resolveDeployment(env, o, configuredSubPath)
	if err != nil {
		return domain.BuildProfile{}, err
	}

	return domain.BuildProfile{Mode: mode, Deployment: deployment}, nil
}

func resolveMode(env map[string]string, o domain.Overrides) (domain.Mode, error) {
	switch {
	case o.Serve:
		return domain.ModeDevelopment, nil
	case o.Library:
		return domain.ModeLibraryBuild, nil
	}

	selector := env[domain.EnvMode]
	if selector == "" {
		return domain.ModeProductionApp, nil
	}
	return domain.ParseMode(selector)
}

// resolveDeployment applies the deployment rules in order; the first match wins.
func resolveDeployment(env map[string]string, o domain.Overrides, configuredSubPath string) (domain.Deployment, error) {
	if o.Base != "" {
		return subPath(o.Base, sourceBaseFlag)
	}
	if base := env[domain.EnvBase]; base != "" {
		return subPath(base, domain.EnvBase)
	}
	if IsProduction(env) && configuredSubPath != "" {
		return subPath(configuredSubPath, sourceConfigSubPath)
	}
	return domain.RootDeployment(), nil
}

func subPath(path, source string) (domain.Deployment, error) {
	d, err := domain.SubPathDeployment(path)
	if err != nil {
		return domain.Deployment{}, zerr.With(err, "source", source)
	}
	return d, nil
}

// IsProduction reports whether the environment marks a production build.
func IsProduction(env map[string]string) bool {
	return env[domain.EnvNodeEnv] == domain.NodeEnvProduction
}

// ResolveGlobalsAvailable reads the runtime-global capability flag.
// The command line wins over the environment; unset means false.
func ResolveGlobalsAvailable(env map[string]string, o domain.Overrides) (bool, error) {
	if o.GlobalsAvailable != nil {
		return *o.GlobalsAvailable, nil
	}

	raw := env[domain.EnvGlobalsAvailable]
	if raw == "" {
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, zerr.With(zerr.With(domain.ErrInvalidCapabilityFlag, "variable", domain.EnvGlobalsAvailable), "value", raw)
	}
	return v, nil
}
