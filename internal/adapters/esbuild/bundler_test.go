package esbuild_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundleplan/internal/adapters/esbuild"
	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/bundleplan/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const mainSource = `import Quill from "quill";
import { greet } from "@/greet";

export function mount(el) {
	return new Quill(el, { theme: greet() });
}
`

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func setupProject(t *testing.T) *domain.Project {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "src/main.js", mainSource)
	writeFile(t, root, "src/greet.js", "export function greet() { return \"snow\"; }\n")
	writeFile(t, root, "node_modules/quill/package.json", `{"name": "quill", "main": "index.js"}`)
	writeFile(t, root, "node_modules/quill/index.js", "module.exports = function FakeQuill() { return \"FAKE_QUILL_BODY\"; };\n")

	project := testProject(root)
	project.Aliases = map[string]string{"@": filepath.Join(root, "src")}
	return project
}

func newBundler(t *testing.T) *esbuild.Bundler {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return esbuild.NewBundler(log)
}

func readOutput(t *testing.T, project *domain.Project) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(project.Output.Dir, "main.js"))
	require.NoError(t, err)
	return string(data)
}

func TestBundler_Bundle(t *testing.T) {
	tests := []struct {
		name        string
		policy      domain.Policy
		format      domain.Format
		contains    []string
		notContains []string
	}{
		{
			name:        "bundle inlines the package",
			policy:      domain.PolicyBundle,
			contains:    []string{"FAKE_QUILL_BODY", "snow"},
			notContains: []string{`from "quill"`},
		},
		{
			name:        "external global reads the runtime global",
			policy:      domain.PolicyExternalGlobal,
			contains:    []string{"globalThis", "Quill", "snow"},
			notContains: []string{"FAKE_QUILL_BODY", `from "quill"`},
		},
		{
			name:        "external shim keeps the import",
			policy:      domain.PolicyExternalShim,
			contains:    []string{`from "quill"`, "snow"},
			notContains: []string{"FAKE_QUILL_BODY"},
		},
		{
			name:        "external shim under umd reads the runtime global",
			policy:      domain.PolicyExternalShim,
			format:      domain.FormatUMD,
			contains:    []string{"var QuillEditor", "globalThis", "Quill", "snow"},
			notContains: []string{"FAKE_QUILL_BODY", `from "quill"`, "__require("},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := setupProject(t)
			plan := &domain.BuildPlan{
				BasePath:     "./",
				Decisions:    []domain.ExternalizationDecision{decision("quill", "Quill", domain.PolicyExternalGlobal, tt.policy)},
				OutputFormat: tt.format,
			}

			res, err := newBundler(t).Bundle(context.Background(), project, plan)
			require.NoError(t, err)
			assert.NotEmpty(t, res.Files)
			assert.NotEmpty(t, res.Metafile)

			out := readOutput(t, project)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestBundler_Bundle_WritesShims(t *testing.T) {
	project := setupProject(t)
	plan := &domain.BuildPlan{
		BasePath:     "./",
		Decisions:    []domain.ExternalizationDecision{decision("quill", "Quill", domain.PolicyExternalShim, domain.PolicyExternalShim)},
		OutputFormat: domain.FormatESModule,
	}

	_, err := newBundler(t).Bundle(context.Background(), project, plan)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(project.Root, ".bundleplan", "shims", "__bundleplan_global_Quill.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `from "quill"`)
}

func TestBundler_Bundle_Errors(t *testing.T) {
	t.Run("no entry points", func(t *testing.T) {
		project := setupProject(t)
		project.EntryPoints = nil
		_, err := newBundler(t).Bundle(context.Background(), project, &domain.BuildPlan{BasePath: "./"})
		require.ErrorContains(t, err, domain.ErrNoEntryPoints.Error())
	})

	t.Run("unresolvable import", func(t *testing.T) {
		project := setupProject(t)
		writeFile(t, project.Root, "src/main.js", "import missing from \"does-not-exist\";\nconsole.log(missing);\n")
		_, err := newBundler(t).Bundle(context.Background(), project, &domain.BuildPlan{BasePath: "./"})
		require.ErrorContains(t, err, domain.ErrBundleFailed.Error())
	})

	t.Run("umd shim without a global name", func(t *testing.T) {
		project := setupProject(t)
		plan := &domain.BuildPlan{
			BasePath:     "./",
			Decisions:    []domain.ExternalizationDecision{decision("quill", "", domain.PolicyExternalShim, domain.PolicyExternalShim)},
			OutputFormat: domain.FormatUMD,
		}
		_, err := newBundler(t).Bundle(context.Background(), project, plan)
		require.ErrorContains(t, err, domain.ErrBundleFailed.Error())
		assert.NoFileExists(t, filepath.Join(project.Output.Dir, "main.js"))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newBundler(t).Bundle(ctx, setupProject(t), &domain.BuildPlan{BasePath: "./"})
		require.ErrorIs(t, err, context.Canceled)
	})
}
