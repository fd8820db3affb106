package esbuild

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/zerr"
)

var nonIdentChars = regexp.MustCompile(`[^A-Za-z0-9_$]`)

// Shim is a generated inject file binding window.<GlobalName> to a module import.
type Shim struct {
	ModuleID   string
	GlobalName string
	Identifier string
	Path       string
}

// PlanShims lists the shims a plan needs. Every decision that declares a
// global name, except those already read from the global at runtime, gets one
// so that window.<GlobalName> references in the sources resolve to the module.
func PlanShims(dir string, plan *domain.BuildPlan) []Shim {
	var shims []Shim
	for _, d := range plan.Decisions {
		if d.Policy == domain.PolicyExternalGlobal || d.Dependency.GlobalName == "" {
			continue
		}
		ident := "__bundleplan_global_" + nonIdentChars.ReplaceAllString(d.Dependency.GlobalName, "_")
		shims = append(shims, Shim{
			ModuleID:   d.Dependency.ModuleID,
			GlobalName: d.Dependency.GlobalName,
			Identifier: ident,
			Path:       filepath.Join(dir, ident+".js"),
		})
	}
	return shims
}

// Source returns the inject file contents.
func (s Shim) Source() string {
	return fmt.Sprintf("import %s from %q;\nexport { %s };\n", s.Identifier, s.ModuleID, s.Identifier)
}

// WriteShims writes every shim file, creating the directory when needed.
func WriteShims(shims []Shim) error {
	for _, s := range shims {
		if err := os.MkdirAll(filepath.Dir(s.Path), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrShimWriteFailed.Error()), "path", s.Path)
		}
		//nolint:gosec // Path is built from the project state directory
		if err := os.WriteFile(s.Path, []byte(s.Source()), domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrShimWriteFailed.Error()), "path", s.Path)
		}
	}
	return nil
}
