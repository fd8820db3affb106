// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/bundleplan/internal/adapters/cas"
	_ "go.trai.ch/bundleplan/internal/adapters/config"
	_ "go.trai.ch/bundleplan/internal/adapters/env"
	_ "go.trai.ch/bundleplan/internal/adapters/esbuild"
	_ "go.trai.ch/bundleplan/internal/adapters/logger"
	_ "go.trai.ch/bundleplan/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/bundleplan/internal/app"
	_ "go.trai.ch/bundleplan/internal/engine/resolver"
)
