package domain

import "go.trai.ch/zerr"

// Policy is the bundling policy applied to a dependency.
type Policy uint8

const (
	// PolicyBundle inlines the dependency into the output.
	PolicyBundle Policy = iota
	// PolicyExternalGlobal leaves the dependency out and reads it from a runtime global.
	PolicyExternalGlobal
	// PolicyExternalShim leaves the dependency out and emits a module interop shim for it.
	PolicyExternalShim
)

var policyNames = map[Policy]string{
	PolicyBundle:         "bundle",
	PolicyExternalGlobal: "external-global",
	PolicyExternalShim:   "external-shim",
}

// ParsePolicy parses the canonical text form of a policy.
// An empty string selects PolicyBundle.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return PolicyBundle, nil
	}
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return PolicyBundle, zerr.With(ErrInvalidPolicy, "policy", s)
}

// String returns the canonical text form.
func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return "unknown"
}

// IsExternal reports whether the policy keeps the dependency out of the bundle.
func (p Policy) IsExternal() bool {
	return p == PolicyExternalGlobal || p == PolicyExternalShim
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Mode is the kind of build being produced.
type Mode uint8

const (
	// ModeProductionApp builds a deployable application.
	ModeProductionApp Mode = iota
	// ModeDevelopment serves the sources through a local dev server.
	ModeDevelopment
	// ModeLibraryBuild builds a library consumed by other bundles.
	ModeLibraryBuild
)

var modeNames = map[Mode]string{
	ModeProductionApp: "production",
	ModeDevelopment:   "development",
	ModeLibraryBuild:  "library",
}

// ParseMode parses a mode selector. The short aliases "serve", "dev", "lib" and "app" are accepted.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "development", "dev", "serve":
		return ModeDevelopment, nil
	case "library", "lib":
		return ModeLibraryBuild, nil
	case "production", "app":
		return ModeProductionApp, nil
	default:
		return ModeProductionApp, zerr.With(ErrInvalidMode, "mode", s)
	}
}

// String returns the canonical text form.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Format is the module format of the bundled output.
type Format uint8

const (
	// FormatESModule emits ES modules.
	FormatESModule Format = iota
	// FormatCommonJS emits CommonJS modules.
	FormatCommonJS
	// FormatUMD emits a script usable through a global name.
	FormatUMD
)

var formatNames = map[Format]string{
	FormatESModule: "esm",
	FormatCommonJS: "cjs",
	FormatUMD:      "umd",
}

// ParseFormat parses the canonical text form of a format.
// An empty string selects FormatESModule.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatESModule, nil
	}
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return FormatESModule, zerr.With(ErrInvalidFormat, "format", s)
}

// String returns the canonical text form.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
