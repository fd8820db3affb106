package domain

import "go.trai.ch/zerr"

// DependencySpec declares how a third-party module is treated by default.
type DependencySpec struct {
	// ModuleID is the import specifier of the module (e.g., "quill").
	ModuleID string `json:"module"`

	// GlobalName is the runtime global that exposes the module (e.g., "Quill").
	GlobalName string `json:"global,omitempty"`

	// DefaultPolicy is the policy a library build applies verbatim.
	DefaultPolicy Policy `json:"defaultPolicy"`
}

// Validate checks the spec's own invariants.
func (d DependencySpec) Validate() error {
	if d.ModuleID == "" {
		return zerr.With(ErrInvalidDependencySpec, "field", "module")
	}
	if d.DefaultPolicy == PolicyExternalGlobal && d.GlobalName == "" {
		return zerr.With(ErrMissingGlobalName, "module", d.ModuleID)
	}
	return nil
}

// DependencyTable is the read-only registry of dependency specs.
// Specs keep their declaration order.
type DependencyTable struct {
	specs []DependencySpec
	index map[string]int
}

// NewDependencyTable validates the specs and builds a table from them.
func NewDependencyTable(specs []DependencySpec) (*DependencyTable, error) {
	t := &DependencyTable{
		specs: make([]DependencySpec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}

	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, zerr.With(err, "index", i)
		}
		if _, exists := t.index[spec.ModuleID]; exists {
			return nil, zerr.With(ErrDuplicateDependency, "module", spec.ModuleID)
		}
		t.index[spec.ModuleID] = len(t.specs)
		t.specs = append(t.specs, spec)
	}

	return t, nil
}

// Lookup returns the spec for the given module.
func (t *DependencyTable) Lookup(moduleID string) (DependencySpec, error) {
	i, ok := t.index[moduleID]
	if !ok {
		return DependencySpec{}, zerr.With(ErrUnknownDependency, "module", moduleID)
	}
	return t.specs[i], nil
}

// All returns a copy of every spec in declaration order.
func (t *DependencyTable) All() []DependencySpec {
	out := make([]DependencySpec, len(t.specs))
	copy(out, t.specs)
	return out
}

// Select returns the specs for the given modules in request order.
// An empty request selects the whole table.
func (t *DependencyTable) Select(moduleIDs []string) ([]DependencySpec, error) {
	if len(moduleIDs) == 0 {
		return t.All(), nil
	}

	out := make([]DependencySpec, 0, len(moduleIDs))
	for _, id := range moduleIDs {
		spec, err := t.Lookup(id)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

// Len returns the number of specs in the table.
func (t *DependencyTable) Len() int {
	return len(t.specs)
}
