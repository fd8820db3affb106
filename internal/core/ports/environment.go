package ports

// EnvironmentSource provides a snapshot of the build environment.
//
//go:generate mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentSource interface {
	// Load returns the process environment merged over the env files found in root.
	// Process variables win over file variables.
	Load(root string) (map[string]string, error)
}
