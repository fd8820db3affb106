// Package build holds build-time information.
package build

// Set by linker flags, e.g. -ldflags "-X go.trai.ch/bundleplan/internal/build.Version=v1.2.0".
var (
	// Version is the application version.
	Version = "dev"

	// Commit is the VCS revision the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
