package ports

import "go.trai.ch/bundleplan/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Discover walks up from cwd and returns the path of the nearest bundleplan.yaml.
	Discover(cwd string) (string, error)

	// Load reads the configuration file at path and returns the project it describes.
	Load(path string) (*domain.Project, error)
}
