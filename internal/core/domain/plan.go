package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Base paths produced for non sub-path deployments.
const (
	RelativeBasePath = "./"
	RootBasePath     = "/"
)

// BuildPlan is the immutable bundler input produced by one resolution.
type BuildPlan struct {
	BasePath     string                    `json:"basePath"`
	Decisions    []ExternalizationDecision `json:"decisions"`
	OutputFormat Format                    `json:"outputFormat"`
}

// IsValidBasePath reports whether p is "./", "/" or an absolute path ending with '/'.
func IsValidBasePath(p string) bool {
	if p == RelativeBasePath || p == RootBasePath {
		return true
	}
	return len(p) > 2 && strings.HasPrefix(p, "/") && strings.HasSuffix(p, "/")
}

// HasExternals reports whether any decision keeps its dependency out of the bundle.
func (p *BuildPlan) HasExternals() bool {
	for _, d := range p.Decisions {
		if d.Policy.IsExternal() {
			return true
		}
	}
	return false
}

// Fingerprint returns the xxhash64 of the plan's canonical JSON encoding.
// Equal plans always produce equal fingerprints.
func (p *BuildPlan) Fingerprint() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
