package domain

// OutputOptions configures the bundler output.
type OutputOptions struct {
	Format    Format
	Dir       string
	Name      string
	Minify    bool
	Sourcemap bool
}

// Project is a loaded bundleplan.yaml with every relative path made absolute.
type Project struct {
	// Root is the directory containing the config file.
	Root       string
	ConfigPath string

	// SubPath is the deployment sub-path used for production builds.
	// Empty means production builds deploy at the root.
	SubPath string

	Output      OutputOptions
	EntryPoints []string
	Aliases     map[string]string

	Dependencies *DependencyTable
}

// OutputFile is a single file written by the bundler.
type OutputFile struct {
	Path string
	Size int
}

// BundleResult summarizes a finished bundle.
type BundleResult struct {
	Files    []OutputFile
	Warnings []string
	Metafile string
}
