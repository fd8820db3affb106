// Package esbuild implements the bundler port on top of esbuild.
package esbuild

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/bundleplan/internal/core/ports"
	"go.trai.ch/zerr"
)

// Bundler implements ports.Bundler using the esbuild Go API.
type Bundler struct {
	logger ports.Logger
}

// NewBundler creates a new Bundler.
func NewBundler(logger ports.Logger) *Bundler {
	return &Bundler{logger: logger}
}

// Bundle builds the project's entry points as directed by the plan.
// The build is cancelled when ctx is done.
func (b *Bundler) Bundle(ctx context.Context, project *domain.Project, plan *domain.BuildPlan) (*domain.BundleResult, error) {
	if len(project.EntryPoints) == 0 {
		return nil, zerr.With(domain.ErrNoEntryPoints, "config", project.ConfigPath)
	}

	shims := PlanShims(filepath.Join(project.Root, domain.DefaultShimsPath()), plan)
	opts, err := Options(project, plan, shims)
	if err != nil {
		return nil, err
	}
	if err := WriteShims(shims); err != nil {
		return nil, err
	}

	buildCtx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		return nil, zerr.With(domain.ErrBundleFailed, "errors", joinMessages(ctxErr.Errors))
	}
	defer buildCtx.Dispose()

	stop := context.AfterFunc(ctx, buildCtx.Cancel)
	defer stop()

	result := buildCtx.Rebuild()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, w := range result.Warnings {
		b.logger.Warn(formatMessage(w))
	}

	if len(result.Errors) > 0 {
		err := zerr.With(domain.ErrBundleFailed, "errors", joinMessages(result.Errors))
		return nil, zerr.With(err, "count", len(result.Errors))
	}

	out := &domain.BundleResult{Metafile: result.Metafile}
	for _, f := range result.OutputFiles {
		out.Files = append(out.Files, domain.OutputFile{Path: f.Path, Size: len(f.Contents)})
	}
	for _, w := range result.Warnings {
		out.Warnings = append(out.Warnings, w.Text)
	}
	return out, nil
}

func formatMessage(m api.Message) string {
	if m.Location == nil {
		return m.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text)
}

func joinMessages(msgs []api.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, formatMessage(m))
	}
	return strings.Join(parts, "; ")
}
