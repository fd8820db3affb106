// Package config provides the configuration loader for bundleplan.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/bundleplan/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the config schema version understood by the loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// NewLoaderWithFS creates a new Loader reading from fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Discover walks up from cwd and returns the nearest bundleplan.yaml.
func (l *Loader) Discover(cwd string) (string, error) {
	current, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigNotFound.Error()), "cwd", cwd)
	}

	for {
		candidate := filepath.Join(current, domain.ConfigFileName)
		if info, statErr := l.FS.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

// Load reads the configuration file at path and maps it to a project.
func (l *Loader) Load(path string) (*domain.Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var planfile Planfile
	if err := l.readAndUnmarshalYAML(absPath, &planfile); err != nil {
		return nil, zerr.With(err, "path", absPath)
	}

	if planfile.Version != "" && planfile.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", domain.ConfigFileName, planfile.Version, SupportedVersion))
	}

	project, err := buildProject(absPath, &planfile)
	if err != nil {
		return nil, zerr.With(err, "path", absPath)
	}
	return project, nil
}

func (l *Loader) readAndUnmarshalYAML(configPath string, target *Planfile) error {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func buildProject(configPath string, pf *Planfile) (*domain.Project, error) {
	root := filepath.Dir(configPath)

	format, err := domain.ParseFormat(pf.Output.Format)
	if err != nil {
		return nil, zerr.With(err, "field", "output.format")
	}

	specs, err := buildSpecs(pf.Dependencies)
	if err != nil {
		return nil, err
	}

	table, err := domain.NewDependencyTable(specs)
	if err != nil {
		return nil, err
	}

	outDir := pf.Output.Dir
	if outDir == "" {
		outDir = domain.DefaultOutputDir
	}

	entryPoints := make([]string, 0, len(pf.EntryPoints))
	for _, ep := range pf.EntryPoints {
		entryPoints = append(entryPoints, resolvePath(root, ep))
	}

	aliases := make(map[string]string, len(pf.Aliases))
	for from, to := range pf.Aliases {
		aliases[from] = resolveAlias(root, to)
	}

	return &domain.Project{
		Root:       root,
		ConfigPath: configPath,
		SubPath:    pf.Deployment.SubPath,
		Output: domain.OutputOptions{
			Format:    format,
			Dir:       resolvePath(root, outDir),
			Name:      pf.Output.Name,
			Minify:    pf.Output.Minify,
			Sourcemap: pf.Output.Sourcemap,
		},
		EntryPoints:  entryPoints,
		Aliases:      aliases,
		Dependencies: table,
	}, nil
}

func buildSpecs(dtos []DependencyDTO) ([]domain.DependencySpec, error) {
	specs := make([]domain.DependencySpec, 0, len(dtos))
	for i, dto := range dtos {
		policy, err := domain.ParsePolicy(dto.Policy)
		if err != nil {
			return nil, zerr.With(err, "field", fmt.Sprintf("dependencies[%d].policy", i))
		}
		specs = append(specs, domain.DependencySpec{
			ModuleID:      dto.Module,
			GlobalName:    dto.Global,
			DefaultPolicy: policy,
		})
	}
	return specs, nil
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// resolveAlias makes relative alias targets absolute; bare module specifiers are kept.
func resolveAlias(root, target string) string {
	if strings.HasPrefix(target, "./") || strings.HasPrefix(target, "../") || target == "." {
		return filepath.Join(root, target)
	}
	return target
}
