package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownDependency is returned when a build references a module absent from the dependency table.
	ErrUnknownDependency = zerr.New("unknown dependency")

	// ErrInvalidDeployment is returned when a sub-path does not begin and end with '/'.
	ErrInvalidDeployment = zerr.New("invalid deployment path, expected a path beginning and ending with '/'")

	// ErrInconsistentPlan is returned when an assembled build plan violates a cross-field invariant.
	ErrInconsistentPlan = zerr.New("inconsistent build plan")

	// ErrPolicyDowngraded is attached to a diagnostic when an external policy falls back to bundling.
	ErrPolicyDowngraded = zerr.New("policy downgraded to bundle")

	// ErrInvalidDependencySpec is returned when a dependency entry is malformed.
	ErrInvalidDependencySpec = zerr.New("invalid dependency spec")

	// ErrDuplicateDependency is returned when the same module is declared twice.
	ErrDuplicateDependency = zerr.New("duplicate dependency")

	// ErrMissingGlobalName is returned when an external-global dependency declares no global name.
	ErrMissingGlobalName = zerr.New("external-global dependency requires a global name")

	// ErrInvalidPolicy is returned when a policy string is not recognised.
	ErrInvalidPolicy = zerr.New("invalid policy, expected 'bundle', 'external-global' or 'external-shim'")

	// ErrInvalidFormat is returned when an output format string is not recognised.
	ErrInvalidFormat = zerr.New("invalid output format, expected 'esm', 'cjs' or 'umd'")

	// ErrInvalidMode is returned when a mode selector is not recognised.
	ErrInvalidMode = zerr.New("invalid mode, expected 'development', 'library' or 'production'")

	// ErrInvalidCapabilityFlag is returned when the runtime-global capability flag cannot be parsed.
	ErrInvalidCapabilityFlag = zerr.New("invalid runtime-global capability flag")

	// ErrInvalidLogFormat is returned when the log format is not recognised.
	ErrInvalidLogFormat = zerr.New("invalid log format, expected 'auto', 'pretty' or 'json'")

	// ErrInvalidOutputFormat is returned when the plan output format is not recognised.
	ErrInvalidOutputFormat = zerr.New("invalid output, expected 'json' or 'yaml'")

	// ErrConfigNotFound is returned when no configuration file can be found.
	ErrConfigNotFound = zerr.New("could not find " + ConfigFileName)

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileParseFailed is returned when a .env file cannot be parsed.
	ErrEnvFileParseFailed = zerr.New("failed to parse env file")

	// ErrNoEntryPoints is returned when a build is requested without entry points.
	ErrNoEntryPoints = zerr.New("no entry points configured")

	// ErrBundleFailed is returned when the bundler reports errors.
	ErrBundleFailed = zerr.New("bundle failed")

	// ErrShimWriteFailed is returned when a global shim file cannot be written.
	ErrShimWriteFailed = zerr.New("failed to write global shim")

	// ErrStoreWriteFailed is returned when a plan cannot be written to the plan store.
	ErrStoreWriteFailed = zerr.New("failed to write plan")

	// ErrStoreReadFailed is returned when the plan store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read plan store")
)
