package config

// Planfile represents the structure of the bundleplan.yaml configuration file.
type Planfile struct {
	Version      string            `yaml:"version"`
	Deployment   DeploymentDTO     `yaml:"deployment"`
	Output       OutputDTO         `yaml:"output"`
	EntryPoints  []string          `yaml:"entryPoints"`
	Aliases      map[string]string `yaml:"aliases"`
	Dependencies []DependencyDTO   `yaml:"dependencies"`
}

// DeploymentDTO holds the production deployment settings.
type DeploymentDTO struct {
	SubPath string `yaml:"subPath"`
}

// OutputDTO holds the bundler output settings.
type OutputDTO struct {
	Format    string `yaml:"format"`
	Dir       string `yaml:"dir"`
	Name      string `yaml:"name"`
	Minify    bool   `yaml:"minify"`
	Sourcemap bool   `yaml:"sourcemap"`
}

// DependencyDTO represents one entry of the dependency table.
type DependencyDTO struct {
	Module string `yaml:"module"`
	Global string `yaml:"global"`
	Policy string `yaml:"policy"`
}
