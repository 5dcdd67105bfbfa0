package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xlgraph/internal/adapters/annotations" //nolint:depguard // Wired in app layer
	"go.trai.ch/xlgraph/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/xlgraph/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/xlgraph/internal/adapters/metrics"     //nolint:depguard // Wired in app layer
	"go.trai.ch/xlgraph/internal/adapters/watcher"     //nolint:depguard // Wired in app layer
	"go.trai.ch/xlgraph/internal/core/ports"
	"go.trai.ch/xlgraph/internal/engine/tracer"
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
			tracer.NodeID,
			annotations.NodeID,
			watcher.NodeID,
			metrics.NodeID,
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
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	t, err := graft.Dep[ports.DependencyTracer](ctx)
	if err != nil {
		return nil, err
	}

	source, err := graft.Dep[ports.AnnotationSource](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[*metrics.Prometheus](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, t, source, watchers, m.Handler(), log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
