package esbuild

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// GlobalsNamespace is the esbuild namespace of modules read from runtime globals.
const GlobalsNamespace = "bundleplan-global"

// aliasMarker tags resolutions started by the alias plugin so they are not rewritten twice.
const aliasMarker = "bundleplan-alias"

// GlobalsPlugin resolves each module in globals to a virtual CommonJS module
// that exports the named runtime global instead of the package.
func GlobalsPlugin(globals map[string]string) api.Plugin {
	return api.Plugin{
		Name: "bundleplan-globals",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: exactFilter(keys(globals))},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					if _, ok := globals[args.Path]; !ok {
						return api.OnResolveResult{}, nil
					}
					return api.OnResolveResult{
						Path:      args.Path,
						Namespace: GlobalsNamespace,
					}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: GlobalsNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					name, ok := globals[args.Path]
					if !ok {
						return api.OnLoadResult{}, fmt.Errorf("no global bound to %q", args.Path)
					}
					contents := GlobalModule(name)
					return api.OnLoadResult{
						Contents: &contents,
						Loader:   api.LoaderJS,
					}, nil
				})
		},
	}
}

// GlobalModule returns the source of a module that re-exports a runtime global.
func GlobalModule(globalName string) string {
	return fmt.Sprintf("module.exports = globalThis[%q];\n", globalName)
}

// AliasPlugin rewrites imports of each alias key, or of a path below it, to the
// alias target and resolves the result with esbuild's own resolver.
func AliasPlugin(aliases map[string]string) api.Plugin {
	names := keys(aliases)
	// Longest key first so that "@/lib" wins over "@".
	slices.SortFunc(names, func(a, b string) int { return len(b) - len(a) })

	return api.Plugin{
		Name: "bundleplan-alias",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: prefixFilter(names)},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					if args.PluginData == aliasMarker {
						return api.OnResolveResult{}, nil
					}

					for _, from := range names {
						rest, ok := strings.CutPrefix(args.Path, from)
						if !ok || (rest != "" && !strings.HasPrefix(rest, "/")) {
							continue
						}

						result := build.Resolve(aliases[from]+rest, api.ResolveOptions{
							Importer:   args.Importer,
							ResolveDir: args.ResolveDir,
							Kind:       args.Kind,
							PluginData: aliasMarker,
						})
						if len(result.Errors) > 0 {
							return api.OnResolveResult{Errors: result.Errors}, nil
						}
						return api.OnResolveResult{
							Path:      result.Path,
							External:  result.External,
							Namespace: result.Namespace,
						}, nil
					}
					return api.OnResolveResult{}, nil
				})
		},
	}
}

func exactFilter(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, regexp.QuoteMeta(n))
	}
	return "^(" + strings.Join(quoted, "|") + ")$"
}

func prefixFilter(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, regexp.QuoteMeta(n))
	}
	return "^(" + strings.Join(quoted, "|") + ")(/.*)?$"
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
