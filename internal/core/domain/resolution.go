package domain

// Overrides are the per-invocation values supplied on the command line.
// Nil or empty fields defer to the environment and config.
type Overrides struct {
	Base             string
	Serve            bool
	Library          bool
	GlobalsAvailable *bool
	Format           string
}

// ResolveInput is the complete input of one resolution.
type ResolveInput struct {
	// Env is a snapshot of the environment variables.
	Env map[string]string

	Overrides Overrides

	// Modules restricts the resolution to these dependencies, in this order.
	// Empty selects the whole table.
	Modules []string
}

// Resolution is the output of one resolution.
type Resolution struct {
	Profile          BuildProfile `json:"profile"`
	GlobalsAvailable bool         `json:"globalsAvailable"`
	Plan             *BuildPlan   `json:"plan"`
	Fingerprint      string       `json:"fingerprint"`
	Diagnostics      []Diagnostic `json:"diagnostics"`
}

// Warnings returns the PolicyDowngraded warnings of the resolution.
func (r *Resolution) Warnings() []error {
	var out []error
	for _, d := range r.Diagnostics {
		if d.Warning != nil {
			out = append(out, d.Warning)
		}
	}
	return out
}
