package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundleplan/internal/app"
	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/bundleplan/internal/core/ports"
	"go.trai.ch/bundleplan/internal/core/ports/mocks"
	"go.trai.ch/bundleplan/internal/engine/resolver"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app     *app.App
	loader  *mocks.MockConfigLoader
	env     *mocks.MockEnvironmentSource
	bundler *mocks.MockBundler
	store   *mocks.MockPlanStore
	watcher *mocks.MockWatcher
	stdout  *bytes.Buffer

	mu          sync.Mutex
	messages    []string
	diagnostics []domain.Diagnostic
}

func (f *fixture) logged() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func (f *fixture) reported() []domain.Diagnostic {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Diagnostic(nil), f.diagnostics...)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:  mocks.NewMockConfigLoader(ctrl),
		env:     mocks.NewMockEnvironmentSource(ctrl),
		bundler: mocks.NewMockBundler(ctrl),
		store:   mocks.NewMockPlanStore(ctrl),
		watcher: mocks.NewMockWatcher(ctrl),
		stdout:  new(bytes.Buffer),
	}

	log := mocks.NewMockLogger(ctrl)
	record := func(msg string) {
		f.mu.Lock()
		f.messages = append(f.messages, msg)
		f.mu.Unlock()
	}
	log.EXPECT().Info(gomock.Any()).Do(record).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).Do(record).AnyTimes()
	log.EXPECT().Error(gomock.Any()).Do(func(err error) { record("error: " + err.Error()) }).AnyTimes()
	log.EXPECT().Diagnostic(gomock.Any()).Do(func(d domain.Diagnostic) {
		f.mu.Lock()
		f.diagnostics = append(f.diagnostics, d)
		f.mu.Unlock()
	}).AnyTimes()

	f.app = app.New(f.loader, f.env, resolver.New(log), f.bundler, f.store, f.watcher, log).
		WithStdout(f.stdout)
	return f
}

func newProject(t *testing.T) *domain.Project {
	t.Helper()
	root := t.TempDir()

	table, err := domain.NewDependencyTable([]domain.DependencySpec{
		{ModuleID: "quill", GlobalName: "Quill", DefaultPolicy: domain.PolicyExternalGlobal},
		{ModuleID: "lodash-es", DefaultPolicy: domain.PolicyBundle},
	})
	require.NoError(t, err)

	return &domain.Project{
		Root:         root,
		ConfigPath:   filepath.Join(root, domain.ConfigFileName),
		SubPath:      "/custom-quill-editor/",
		Output:       domain.OutputOptions{Dir: filepath.Join(root, domain.DefaultOutputDir)},
		EntryPoints:  []string{filepath.Join(root, "src", "main.js")},
		Dependencies: table,
	}
}

func TestApp_Resolve(t *testing.T) {
	f := newFixture(t)
	project := newProject(t)

	f.loader.EXPECT().Load(project.ConfigPath).Return(project, nil)
	f.env.EXPECT().Load(project.Root).Return(map[string]string{domain.EnvNodeEnv: "production"}, nil)
	f.store.EXPECT().Put(project.Root, gomock.Any()).Return(nil)

	res, err := f.app.Resolve(context.Background(), app.Options{
		ConfigPath: project.ConfigPath,
		Output:     "json",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ModeProductionApp, res.Profile.Mode)
	assert.Equal(t, "/custom-quill-editor/", res.Plan.BasePath)
	require.Len(t, res.Plan.Decisions, 2)
	assert.Equal(t, domain.PolicyBundle, res.Plan.Decisions[0].Policy, "quill falls back without the runtime global")
	assert.Len(t, res.Warnings(), 1)

	assert.Contains(t, f.stdout.String(), `"fingerprint": "`+res.Fingerprint+`"`)
	reported := f.reported()
	require.Len(t, reported, 2)
	assert.Equal(t, "quill", reported[0].ModuleID)
	assert.True(t, reported[0].Downgraded)
	assert.Equal(t, domain.PolicyExternalGlobal, reported[0].DeclaredPolicy)
	assert.Equal(t, domain.ReasonRuntimeGlobalUnconfirmed, reported[0].Reason)
}

func TestApp_Resolve_Modules(t *testing.T) {
	f := newFixture(t)
	project := newProject(t)

	f.loader.EXPECT().Load(project.ConfigPath).Return(project, nil)
	f.env.EXPECT().Load(project.Root).Return(map[string]string{}, nil)

	_, err := f.app.Resolve(context.Background(), app.Options{
		ConfigPath: project.ConfigPath,
		Modules:    []string{"katex"},
	})
	require.ErrorContains(t, err, domain.ErrUnknownDependency.Error())
	assert.Empty(t, f.stdout.String())
}

func TestApp_Resolve_ConfigNotFound(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Discover(gomock.Any()).Return("", zerr.With(domain.ErrConfigNotFound, "cwd", "/work"))

	_, err := f.app.Resolve(context.Background(), app.Options{})
	require.ErrorContains(t, err, "failed to load configuration")
	require.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
}

func TestApp_Resolve_EnvError(t *testing.T) {
	f := newFixture(t)
	project := newProject(t)

	f.loader.EXPECT().Load(project.ConfigPath).Return(project, nil)
	f.env.EXPECT().Load(project.Root).Return(nil, domain.ErrEnvFileParseFailed)

	_, err := f.app.Resolve(context.Background(), app.Options{ConfigPath: project.ConfigPath})
	require.ErrorContains(t, err, domain.ErrEnvFileParseFailed.Error())
}

func TestApp_Resolve_InvalidOutput(t *testing.T) {
	f := newFixture(t)
	project := newProject(t)

	f.loader.EXPECT().Load(project.ConfigPath).Return(project, nil)
	f.env.EXPECT().Load(project.Root).Return(map[string]string{}, nil)
	f.store.EXPECT().Put(project.Root, gomock.Any()).Return(nil)

	_, err := f.app.Resolve(context.Background(), app.Options{ConfigPath: project.ConfigPath, Output: "xml"})
	require.ErrorContains(t, err, domain.ErrInvalidOutputFormat.Error())
}

func TestApp_Build(t *testing.T) {
	f := newFixture(t)
	project := newProject(t)
	yes := true

	f.loader.EXPECT().Load(project.ConfigPath).Return(project, nil)
	f.env.EXPECT().Load(project.Root).Return(map[string]string{domain.EnvNodeEnv: "production"}, nil)
	f.store.EXPECT().Put(project.Root, gomock.Any()).Return(nil)
	f.bundler.EXPECT().Bundle(gomock.Any(), project, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Project, plan *domain.BuildPlan) (*domain.BundleResult, error) {
			assert.Equal(t, domain.PolicyExternalGlobal, plan.Decisions[0].Policy)
			require.NotNil(t, plan.Decisions[0].GlobalBinding)
			assert.Equal(t, "Quill", plan.Decisions[0].GlobalBinding.GlobalName)
			return &domain.BundleResult{
				Files: []domain.OutputFile{{Path: filepath.Join(project.Root, "dist", "main.js"), Size: 42}},
			}, nil
		})

	result, err := f.app.Build(context.Background(), app.Options{
		ConfigPath: project.ConfigPath,
		Overrides:  domain.Overrides{GlobalsAvailable: &yes},
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	assert.Contains(t, f.logged(), "wrote "+filepath.Join("dist", "main.js")+" (42 bytes)")
	assert.Contains(t, f.stdout.String(), "production → /custom-quill-editor/")
	assert.Contains(t, f.stdout.String(), "external-global")
}

func TestApp_Build_Failure(t *testing.T) {
	f := newFixture(t)
	project := newProject(t)

	f.loader.EXPECT().Load(project.ConfigPath).Return(project, nil)
	f.env.EXPECT().Load(project.Root).Return(map[string]string{}, nil)
	f.store.EXPECT().Put(project.Root, gomock.Any()).Return(nil)
	f.bundler.EXPECT().Bundle(gomock.Any(), project, gomock.Any()).
		Return(nil, zerr.With(domain.ErrBundleFailed, "count", 1))

	_, err := f.app.Build(context.Background(), app.Options{ConfigPath: project.ConfigPath})
	require.ErrorContains(t, err, domain.ErrBundleFailed.Error())
	assert.Empty(t, f.stdout.String())
}

func TestApp_Build_StoreFailure(t *testing.T) {
	f := newFixture(t)
	project := newProject(t)

	f.loader.EXPECT().Load(project.ConfigPath).Return(project, nil)
	f.env.EXPECT().Load(project.Root).Return(map[string]string{}, nil)
	f.store.EXPECT().Put(project.Root, gomock.Any()).Return(domain.ErrStoreWriteFailed)

	_, err := f.app.Build(context.Background(), app.Options{ConfigPath: project.ConfigPath})
	require.ErrorIs(t, err, domain.ErrStoreWriteFailed)
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)
	project := newProject(t)

	state := filepath.Join(project.Root, domain.DefaultPlansPath())
	require.NoError(t, os.MkdirAll(state, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(state, domain.LatestPlanFile), []byte("abc\n"), domain.FilePerm))
	require.NoError(t, os.MkdirAll(project.Output.Dir, domain.DirPerm))

	t.Run("state only", func(t *testing.T) {
		err := f.app.Clean(context.Background(), app.CleanOptions{ConfigPath: project.ConfigPath})
		require.NoError(t, err)

		assert.NoDirExists(t, filepath.Join(project.Root, domain.StateDirName))
		assert.DirExists(t, project.Output.Dir)
		assert.Contains(t, f.logged(), "removing plan state...")
		assert.Contains(t, f.logged(), "removed plan state")
	})

	t.Run("with output", func(t *testing.T) {
		f.loader.EXPECT().Load(project.ConfigPath).Return(project, nil)

		err := f.app.Clean(context.Background(), app.CleanOptions{ConfigPath: project.ConfigPath, Output: true})
		require.NoError(t, err)

		assert.NoDirExists(t, project.Output.Dir)
		assert.Contains(t, f.logged(), "removed build output")
	})
}

func TestApp_Clean_NoConfig(t *testing.T) {
	f := newFixture(t)
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, domain.StateDirName), domain.DirPerm))
	f.loader.EXPECT().Discover(gomock.Any()).Return("", domain.ErrConfigNotFound)

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{}))
	assert.NoDirExists(t, filepath.Join(tmpDir, domain.StateDirName))
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.app.WithStdout(io.Discard).WithDebounceWindow(50 * time.Millisecond)
		project := newProject(t)

		events := make(chan ports.WatchEvent)
		var mu sync.Mutex
		var latest string
		var bundles atomic.Int32

		f.loader.EXPECT().Load(project.ConfigPath).Return(project, nil).AnyTimes()
		f.env.EXPECT().Load(project.Root).Return(map[string]string{}, nil).AnyTimes()
		f.store.EXPECT().Latest(project.Root).DoAndReturn(func(string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			return latest, nil
		}).AnyTimes()
		f.store.EXPECT().Put(project.Root, gomock.Any()).DoAndReturn(func(_ string, res *domain.Resolution) error {
			mu.Lock()
			defer mu.Unlock()
			latest = res.Fingerprint
			return nil
		}).AnyTimes()
		f.bundler.EXPECT().Bundle(gomock.Any(), project, gomock.Any()).
			DoAndReturn(func(context.Context, *domain.Project, *domain.BuildPlan) (*domain.BundleResult, error) {
				bundles.Add(1)
				return &domain.BundleResult{}, nil
			}).AnyTimes()

		f.watcher.EXPECT().Start(gomock.Any(), project.Root, project.Output.Dir).Return(nil)
		f.watcher.EXPECT().Events().Return(func(yield func(ports.WatchEvent) bool) {
			for ev := range events {
				if !yield(ev) {
					return
				}
			}
		})
		f.watcher.EXPECT().Stop().DoAndReturn(func() error {
			close(events)
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- f.app.Watch(ctx, app.Options{ConfigPath: project.ConfigPath})
		}()

		synctest.Wait()
		require.Equal(t, int32(1), bundles.Load(), "initial build")

		// Env change with an unchanged plan skips the rebuild.
		events <- ports.WatchEvent{Path: filepath.Join(project.Root, ".env"), Operation: ports.OpWrite}
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(1), bundles.Load())
		assert.True(t, hasMessage(f.logged(), "unchanged, skipping rebuild"))

		// Unrelated files are ignored.
		events <- ports.WatchEvent{Path: filepath.Join(project.Root, "src", "main.js"), Operation: ports.OpWrite}
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(1), bundles.Load())

		// Config changes always rebuild.
		events <- ports.WatchEvent{Path: project.ConfigPath, Operation: ports.OpWrite}
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int32(2), bundles.Load())

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_StartError(t *testing.T) {
	f := newFixture(t)
	f.app.WithStdout(io.Discard)
	project := newProject(t)

	f.loader.EXPECT().Load(project.ConfigPath).Return(project, nil)
	f.env.EXPECT().Load(project.Root).Return(map[string]string{}, nil)
	f.store.EXPECT().Latest(project.Root).Return("", nil)
	f.store.EXPECT().Put(project.Root, gomock.Any()).Return(nil)
	f.bundler.EXPECT().Bundle(gomock.Any(), project, gomock.Any()).Return(&domain.BundleResult{}, nil)
	f.watcher.EXPECT().Start(gomock.Any(), project.Root, project.Output.Dir).Return(errors.New("too many open files"))

	err := f.app.Watch(context.Background(), app.Options{ConfigPath: project.ConfigPath})
	require.ErrorContains(t, err, "failed to start watcher")
}

func TestApp_Watch_SkipsConfiguredOutputDir(t *testing.T) {
	f := newFixture(t)
	f.app.WithStdout(io.Discard)
	project := newProject(t)
	project.Output.Dir = filepath.Join(project.Root, "build")

	f.loader.EXPECT().Load(project.ConfigPath).Return(project, nil)
	f.env.EXPECT().Load(project.Root).Return(map[string]string{}, nil)
	f.store.EXPECT().Latest(project.Root).Return("", nil)
	f.store.EXPECT().Put(project.Root, gomock.Any()).Return(nil)
	f.bundler.EXPECT().Bundle(gomock.Any(), project, gomock.Any()).Return(&domain.BundleResult{}, nil)

	f.watcher.EXPECT().Start(gomock.Any(), project.Root, filepath.Join(project.Root, "build")).
		Return(errors.New("stop here"))

	err := f.app.Watch(context.Background(), app.Options{ConfigPath: project.ConfigPath})
	require.ErrorContains(t, err, "failed to start watcher")
}

func TestApp_Watch_BrokenConfigStillWatches(t *testing.T) {
	f := newFixture(t)
	f.app.WithStdout(io.Discard)
	project := newProject(t)

	f.loader.EXPECT().Load(project.ConfigPath).Return(nil, domain.ErrConfigParseFailed)
	f.watcher.EXPECT().Start(gomock.Any(), project.Root).Return(errors.New("stop here"))

	err := f.app.Watch(context.Background(), app.Options{ConfigPath: project.ConfigPath})
	require.ErrorContains(t, err, "failed to start watcher")
	assert.True(t, hasMessage(f.logged(), "failed to load configuration"))
}

func hasMessage(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
