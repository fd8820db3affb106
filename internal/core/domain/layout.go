package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal project state directory.
	StateDirName = ".bundleplan"

	// PlansDirName is the name of the plan store directory.
	PlansDirName = "plans"

	// ShimsDirName is the name of the generated inject shim directory.
	ShimsDirName = "shims"

	// LatestPlanFile names the file holding the fingerprint of the last stored plan.
	LatestPlanFile = "latest"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "bundleplan.yaml"

	// DefaultOutputDir is the bundler output directory when none is configured.
	DefaultOutputDir = "dist"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Environment variables read during resolution and logger setup.
const (
	EnvNodeEnv          = "NODE_ENV"
	EnvBase             = "BUNDLEPLAN_BASE"
	EnvMode             = "BUNDLEPLAN_MODE"
	EnvGlobalsAvailable = "BUNDLEPLAN_GLOBALS_AVAILABLE"
	EnvLogFormat        = "BUNDLEPLAN_LOG_FORMAT"
)

// NodeEnvProduction is the NODE_ENV value that marks a production environment.
const NodeEnvProduction = "production"

// DefaultStatePath returns the default root directory for bundleplan state.
func DefaultStatePath() string {
	return StateDirName
}

// DefaultPlansPath returns the default path for the plan store.
// It joins .bundleplan and plans.
func DefaultPlansPath() string {
	return filepath.Join(StateDirName, PlansDirName)
}

// DefaultShimsPath returns the default path for generated inject shims.
// It joins .bundleplan and shims.
func DefaultShimsPath() string {
	return filepath.Join(StateDirName, ShimsDirName)
}
