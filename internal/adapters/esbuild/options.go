package esbuild

import (
	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/zerr"
)

// Options translates a project and its build plan into esbuild build options.
// Shims are the inject files generated for decisions that bind a window global.
//
// An IIFE cannot import anything at runtime, so under UMD an external shim is
// read from its declared global like an external-global dependency. A shim
// without a global name has no UMD form and is rejected.
func Options(project *domain.Project, plan *domain.BuildPlan, shims []Shim) (api.BuildOptions, error) {
	opts := api.BuildOptions{
		EntryPoints:   project.EntryPoints,
		AbsWorkingDir: project.Root,
		Outdir:        project.Output.Dir,
		PublicPath:    plan.BasePath,
		Bundle:        true,
		Write:         true,
		Metafile:      true,
		Platform:      api.PlatformBrowser,
		LogLevel:      api.LogLevelSilent,
		Sourcemap:     cond(project.Output.Sourcemap, api.SourceMapLinked, api.SourceMapNone),

		MinifyWhitespace:  project.Output.Minify,
		MinifyIdentifiers: project.Output.Minify,
		MinifySyntax:      project.Output.Minify,
	}

	switch plan.OutputFormat {
	case domain.FormatCommonJS:
		opts.Format = api.FormatCommonJS
	case domain.FormatUMD:
		// esbuild has no UMD output; an IIFE assigned to a global is the script-tag form.
		opts.Format = api.FormatIIFE
		opts.GlobalName = project.Output.Name
	default:
		opts.Format = api.FormatESModule
	}

	globals := make(map[string]string)
	for _, d := range plan.Decisions {
		switch d.Policy {
		case domain.PolicyExternalShim:
			if plan.OutputFormat != domain.FormatUMD {
				opts.External = append(opts.External, d.Dependency.ModuleID)
				continue
			}
			if d.Dependency.GlobalName == "" {
				err := zerr.With(domain.ErrBundleFailed, "module", d.Dependency.ModuleID)
				return api.BuildOptions{}, zerr.With(err, "reason", "external-shim without a global name cannot be loaded by a umd bundle")
			}
			globals[d.Dependency.ModuleID] = d.Dependency.GlobalName
		case domain.PolicyExternalGlobal:
			globals[d.Dependency.ModuleID] = d.GlobalBinding.GlobalName
		case domain.PolicyBundle:
		}
	}

	if len(shims) > 0 {
		opts.Define = make(map[string]string, len(shims))
		for _, s := range shims {
			opts.Inject = append(opts.Inject, s.Path)
			opts.Define["window."+s.GlobalName] = s.Identifier
		}
	}

	if len(project.Aliases) > 0 {
		opts.Plugins = append(opts.Plugins, AliasPlugin(project.Aliases))
	}
	if len(globals) > 0 {
		opts.Plugins = append(opts.Plugins, GlobalsPlugin(globals))
	}

	return opts, nil
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
