// Package app implements the application layer for bundleplan.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/bundleplan/internal/adapters/env"     //nolint:depguard // Wired in app layer
	"go.trai.ch/bundleplan/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/bundleplan/internal/core/ports"
	"go.trai.ch/bundleplan/internal/engine/resolver"
	"go.trai.ch/bundleplan/internal/ui/planview"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	envSource    ports.EnvironmentSource
	resolver     *resolver.Resolver
	bundler      ports.Bundler
	store        ports.PlanStore
	watcher      ports.Watcher
	logger       ports.Logger

	stdout         io.Writer
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	envSource ports.EnvironmentSource,
	res *resolver.Resolver,
	bundler ports.Bundler,
	store ports.PlanStore,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader:   loader,
		envSource:      envSource,
		resolver:       res,
		bundler:        bundler,
		store:          store,
		watcher:        w,
		logger:         log,
		stdout:         os.Stdout,
		debounceWindow: watcher.DefaultDebounceWindow,
	}
}

// WithStdout sets the writer that plans and summaries are printed to.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithDebounceWindow sets how long watch mode waits for file events to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounceWindow = d
	return a
}

// Options configures a single resolution.
type Options struct {
	// ConfigPath is the config file to load. Empty searches upward from the working directory.
	ConfigPath string

	Overrides domain.Overrides

	// Modules restricts the plan to these dependencies. Empty selects all.
	Modules []string

	// Output is the encoding Resolve prints the plan in ("json" or "yaml").
	Output string
}

// Resolve computes the build plan, records it in the plan store and prints it.
func (a *App) Resolve(_ context.Context, opts Options) (*domain.Resolution, error) {
	project, res, err := a.plan(opts)
	if err != nil {
		return nil, err
	}

	if err := a.store.Put(project.Root, res); err != nil {
		return nil, err
	}

	if err := planview.Render(a.stdout, res, opts.Output); err != nil {
		return nil, err
	}
	return res, nil
}

// Build computes the build plan and bundles the project with it.
func (a *App) Build(ctx context.Context, opts Options) (*domain.BundleResult, error) {
	project, res, err := a.plan(opts)
	if err != nil {
		return nil, err
	}

	return a.bundle(ctx, project, res)
}

// Watch builds the project, then rebuilds whenever the config file or an
// env file changes. The configured output directory is not watched.
// It returns when ctx is canceled.
func (a *App) Watch(ctx context.Context, opts Options) error {
	configPath, err := a.configPath(opts.ConfigPath)
	if err != nil {
		return err
	}
	opts.ConfigPath = configPath
	root := filepath.Dir(configPath)

	var (
		mu        sync.Mutex
		outputDir string
	)
	rebuild := func(force bool) {
		mu.Lock()
		defer mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		project, err := a.rebuild(ctx, opts, force)
		if project != nil {
			outputDir = project.Output.Dir
		}
		if err != nil {
			a.logger.Error(err)
		}
	}

	rebuild(true)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var skip []string
	if outputDir != "" {
		skip = append(skip, outputDir)
	}
	if err := a.watcher.Start(ctx, root, skip...); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start watcher"), "root", root)
	}
	a.logger.Info(fmt.Sprintf("watching %s for changes", root))

	deb := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		rebuild(slices.Contains(paths, configPath))
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		for ev := range a.watcher.Events() {
			if isWatchedFile(root, configPath, ev.Path) {
				deb.Add(ev.Path)
			}
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.watcher.Stop()
	})

	err = g.Wait()

	// Let an in-flight rebuild finish before returning.
	mu.Lock()
	defer mu.Unlock()
	return err
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// ConfigPath locates the project. Empty searches upward from the working directory.
	ConfigPath string

	// Output also removes the configured output directory.
	Output bool
}

// Clean removes plan state and, optionally, the bundler output.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	root, err := a.projectRoot(options.ConfigPath)
	if err != nil {
		return err
	}

	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(filepath.Join(root, domain.DefaultStatePath()), "plan state")

	if options.Output {
		project, err := a.load(options.ConfigPath)
		if err != nil {
			return errors.Join(errs, err)
		}
		remove(project.Output.Dir, "build output")
	}

	return errs
}

// rebuild returns the loaded project even when bundling fails, so that
// watch mode knows the output directory to leave unwatched.
func (a *App) rebuild(ctx context.Context, opts Options, force bool) (*domain.Project, error) {
	project, res, err := a.plan(opts)
	if err != nil {
		return nil, err
	}

	previous, err := a.store.Latest(project.Root)
	if err != nil {
		return project, err
	}

	if !force && previous == res.Fingerprint {
		a.logger.Info(fmt.Sprintf("plan %s unchanged, skipping rebuild", res.Fingerprint))
		return project, nil
	}
	if previous != "" && previous != res.Fingerprint {
		a.logger.Info(fmt.Sprintf("plan changed %s → %s", previous, res.Fingerprint))
	}

	_, err = a.bundle(ctx, project, res)
	return project, err
}

func (a *App) bundle(ctx context.Context, project *domain.Project, res *domain.Resolution) (*domain.BundleResult, error) {
	if err := a.store.Put(project.Root, res); err != nil {
		return nil, err
	}

	result, err := a.bundler.Bundle(ctx, project, res.Plan)
	if err != nil {
		return nil, err
	}

	for _, f := range result.Files {
		a.logger.Info(fmt.Sprintf("wrote %s (%d bytes)", relativeTo(project.Root, f.Path), f.Size))
	}

	if err := planview.Summary(a.stdout, res); err != nil {
		return nil, err
	}
	return result, nil
}

// plan loads the project and environment and resolves the build plan.
func (a *App) plan(opts Options) (*domain.Project, *domain.Resolution, error) {
	project, err := a.load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	vars, err := a.envSource.Load(project.Root)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load environment")
	}

	res, err := a.resolver.Resolve(project, domain.ResolveInput{
		Env:       vars,
		Overrides: opts.Overrides,
		Modules:   opts.Modules,
	})
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to resolve build plan")
	}

	return project, res, nil
}

func (a *App) load(configPath string) (*domain.Project, error) {
	path, err := a.configPath(configPath)
	if err != nil {
		return nil, err
	}

	project, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

func (a *App) configPath(configPath string) (string, error) {
	if configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to resolve config path"), "path", configPath)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}

	path, err := a.configLoader.Discover(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to load configuration")
	}
	return path, nil
}

// projectRoot returns the directory of the config file, or the working
// directory when there is none.
func (a *App) projectRoot(configPath string) (string, error) {
	path, err := a.configPath(configPath)
	if err == nil {
		return filepath.Dir(path), nil
	}
	if configPath != "" {
		return "", err
	}

	cwd, cwdErr := os.Getwd()
	if cwdErr != nil {
		return "", zerr.Wrap(cwdErr, "failed to get working directory")
	}
	return cwd, nil
}

func isWatchedFile(root, configPath, path string) bool {
	if path == configPath {
		return true
	}
	return filepath.Dir(path) == root && env.IsEnvFile(filepath.Base(path))
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
