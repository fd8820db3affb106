package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundleplan/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/bundleplan/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/bundleplan/internal/adapters/env"     //nolint:depguard // Wired in app layer
	"go.trai.ch/bundleplan/internal/adapters/esbuild" //nolint:depguard // Wired in app layer
	"go.trai.ch/bundleplan/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/bundleplan/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/bundleplan/internal/core/ports"
	"go.trai.ch/bundleplan/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			env.NodeID,
			resolver.NodeID,
			esbuild.NodeID,
			cas.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	envSource, err := graft.Dep[ports.EnvironmentSource](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	bundler, err := graft.Dep[ports.Bundler](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.PlanStore](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, envSource, res, bundler, store, w, log), nil
}
