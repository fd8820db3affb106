// Package env provides the build environment snapshot.
package env

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/zerr"
)

// Source implements ports.EnvironmentSource by merging the process
// environment over dotenv files found in the project root.
type Source struct {
	environ func() []string
}

// NewSource creates a Source reading the process environment.
func NewSource() *Source {
	return &Source{environ: os.Environ}
}

// NewSourceWithEnviron creates a Source reading variables from environ.
func NewSourceWithEnviron(environ func() []string) *Source {
	return &Source{environ: environ}
}

// Load returns the merged environment for root. The mode-specific files are
// chosen by NODE_ENV in the process environment.
func (s *Source) Load(root string) (map[string]string, error) {
	process := parseEnviron(s.environ())

	merged := make(map[string]string)
	for _, name := range Files(fileMode(process)) {
		vars, err := readFile(filepath.Join(root, name))
		if err != nil {
			return nil, err
		}
		for k, v := range vars {
			merged[k] = v
		}
	}

	for k, v := range process {
		merged[k] = v
	}
	return merged, nil
}

// Files lists the dotenv files read for mode, lowest precedence first.
func Files(mode string) []string {
	return []string{
		".env",
		".env.local",
		".env." + mode,
		".env." + mode + ".local",
	}
}

// IsEnvFile reports whether name is one of the dotenv files this package reads.
func IsEnvFile(name string) bool {
	return name == ".env" || strings.HasPrefix(name, ".env.")
}

func fileMode(vars map[string]string) string {
	if vars[domain.EnvNodeEnv] == domain.NodeEnvProduction {
		return "production"
	}
	return "development"
}

func readFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvFileParseFailed.Error()), "path", path)
	}
	return vars, nil
}

func parseEnviron(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return vars
}
