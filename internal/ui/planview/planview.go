// Package planview renders resolved build plans for the terminal.
package planview

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/bundleplan/internal/ui/output"
	"go.trai.ch/bundleplan/internal/ui/style"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Output encodings accepted by Render.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// View is the serialized form of a resolution.
type View struct {
	Mode             string           `json:"mode" yaml:"mode"`
	Deployment       string           `json:"deployment" yaml:"deployment"`
	GlobalsAvailable bool             `json:"globalsAvailable" yaml:"globalsAvailable"`
	BasePath         string           `json:"basePath" yaml:"basePath"`
	OutputFormat     string           `json:"outputFormat" yaml:"outputFormat"`
	Fingerprint      string           `json:"fingerprint" yaml:"fingerprint"`
	Decisions        []DecisionView   `json:"decisions" yaml:"decisions"`
	Diagnostics      []DiagnosticView `json:"diagnostics" yaml:"diagnostics"`
}

// DecisionView is the serialized form of one externalization decision.
type DecisionView struct {
	Module        string `json:"module" yaml:"module"`
	Policy        string `json:"policy" yaml:"policy"`
	DefaultPolicy string `json:"defaultPolicy" yaml:"defaultPolicy"`
	ExportedAs    string `json:"exportedAs,omitempty" yaml:"exportedAs,omitempty"`
	GlobalName    string `json:"globalName,omitempty" yaml:"globalName,omitempty"`
}

// DiagnosticView is the serialized form of one diagnostic.
type DiagnosticView struct {
	Module     string `json:"module" yaml:"module"`
	Policy     string `json:"policy" yaml:"policy"`
	Reason     string `json:"reason" yaml:"reason"`
	Downgraded bool   `json:"downgraded,omitempty" yaml:"downgraded,omitempty"`
}

// NewView flattens a resolution into its serialized form.
func NewView(res *domain.Resolution) View {
	v := View{
		Mode:             res.Profile.Mode.String(),
		Deployment:       res.Profile.Deployment.String(),
		GlobalsAvailable: res.GlobalsAvailable,
		Fingerprint:      res.Fingerprint,
		Decisions:        []DecisionView{},
		Diagnostics:      make([]DiagnosticView, 0, len(res.Diagnostics)),
	}

	if res.Plan != nil {
		v.BasePath = res.Plan.BasePath
		v.OutputFormat = res.Plan.OutputFormat.String()
		v.Decisions = make([]DecisionView, 0, len(res.Plan.Decisions))
		for _, d := range res.Plan.Decisions {
			dv := DecisionView{
				Module:        d.Dependency.ModuleID,
				Policy:        d.Policy.String(),
				DefaultPolicy: d.Dependency.DefaultPolicy.String(),
			}
			if d.GlobalBinding != nil {
				dv.ExportedAs = d.GlobalBinding.ExportedAs
				dv.GlobalName = d.GlobalBinding.GlobalName
			}
			v.Decisions = append(v.Decisions, dv)
		}
	}

	for _, d := range res.Diagnostics {
		v.Diagnostics = append(v.Diagnostics, DiagnosticView{
			Module:     d.ModuleID,
			Policy:     d.ChosenPolicy.String(),
			Reason:     d.Reason,
			Downgraded: d.Downgraded,
		})
	}

	return v
}

// Render writes the resolution to w as JSON or YAML.
func Render(w io.Writer, res *domain.Resolution, format string) error {
	view := NewView(res)

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	default:
		return zerr.With(domain.ErrInvalidOutputFormat, "output", format)
	}
}

// Summary writes a human-readable table of the plan's decisions to w.
func Summary(w io.Writer, res *domain.Resolution) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())

	title := r.NewStyle().Bold(true).Foreground(style.Iris)
	muted := r.NewStyle().Foreground(style.Slate)
	warn := r.NewStyle().Foreground(style.Yellow)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s\n",
		title.Render(res.Profile.Mode.String()),
		muted.Render(style.Arrow),
		muted.Render(basePath(res)),
	)

	width := 0
	for _, d := range res.Diagnostics {
		width = max(width, len(d.ModuleID))
	}

	for _, d := range res.Diagnostics {
		policy := d.ChosenPolicy.String()
		icon := style.Check
		if d.Downgraded {
			icon = warn.Render(style.Warning)
		}
		fmt.Fprintf(&sb, "  %s %-*s  %s  %s\n",
			icon,
			width, d.ModuleID,
			r.NewStyle().Foreground(style.PolicyColor(policy)).Render(policy),
			muted.Render(d.Reason),
		)
	}

	fmt.Fprintf(&sb, "  %s\n", muted.Render("plan "+res.Fingerprint))

	_, err := io.WriteString(w, sb.String())
	return err
}

func basePath(res *domain.Resolution) string {
	if res.Plan == nil {
		return ""
	}
	return res.Plan.BasePath
}
