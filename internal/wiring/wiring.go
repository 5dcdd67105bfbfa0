// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/xlgraph/internal/adapters/annotations"
	_ "go.trai.ch/xlgraph/internal/adapters/config"
	_ "go.trai.ch/xlgraph/internal/adapters/excel"
	_ "go.trai.ch/xlgraph/internal/adapters/graphstore"
	_ "go.trai.ch/xlgraph/internal/adapters/hasher"
	_ "go.trai.ch/xlgraph/internal/adapters/logger"
	_ "go.trai.ch/xlgraph/internal/adapters/metrics"
	_ "go.trai.ch/xlgraph/internal/adapters/refparser"
	_ "go.trai.ch/xlgraph/internal/adapters/telemetry"
	_ "go.trai.ch/xlgraph/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/xlgraph/internal/app"
	_ "go.trai.ch/xlgraph/internal/engine/builder"
	_ "go.trai.ch/xlgraph/internal/engine/cachemgr"
	_ "go.trai.ch/xlgraph/internal/engine/ondemand"
	_ "go.trai.ch/xlgraph/internal/engine/scan"
	_ "go.trai.ch/xlgraph/internal/engine/tracer"
)
