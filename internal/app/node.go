package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/courseware/internal/adapters/api"       //nolint:depguard // Wired in app layer
	"go.trai.ch/courseware/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/courseware/internal/adapters/live"      //nolint:depguard // Wired in app layer
	"go.trai.ch/courseware/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/courseware/internal/adapters/storage"   //nolint:depguard // Wired in app layer
	"go.trai.ch/courseware/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/courseware/internal/engine/cache"
	"go.trai.ch/courseware/internal/engine/resource"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
	// CatalogNodeID is the unique identifier for the collection services Graft node.
	CatalogNodeID graft.ID = "app.catalog"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App     *App
	Logger  ports.Logger
	Catalog *resource.Catalog
}

// Close stops every collection cache.
func (c *Components) Close() {
	if c.Catalog != nil {
		c.Catalog.Close()
	}
}

func init() {
	// Catalog Node
	graft.Register(graft.Node[*resource.Catalog]{
		ID:        CatalogNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			api.NodeID,
			logger.NodeID,
			config.SettingsNodeID,
			telemetry.TracerNodeID,
			telemetry.MetricsNodeID,
		},
		Run: runCatalogNode,
	})

	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			CatalogNodeID,
			storage.NodeID,
			storage.TokensNodeID,
			live.NodeID,
			telemetry.MetricsNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			CatalogNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runCatalogNode(ctx context.Context) (*resource.Catalog, error) {
	requester, err := graft.Dep[ports.Requester](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	metrics, err := graft.Dep[*telemetry.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	return resource.NewCatalog(requester, log,
		cache.FromConfig(cfg),
		cache.WithTracer(tracer),
		cache.WithMetrics(metrics),
	), nil
}

func runAppNode(ctx context.Context) (*App, error) {
	catalog, err := graft.Dep[*resource.Catalog](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.KeyValueStore](ctx)
	if err != nil {
		return nil, err
	}

	tokens, err := graft.Dep[ports.TokenStore](ctx)
	if err != nil {
		return nil, err
	}

	feed, err := graft.Dep[ports.LiveFeed](ctx)
	if err != nil {
		return nil, err
	}

	metrics, err := graft.Dep[*telemetry.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(catalog, tokens, store, feed, metrics, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	catalog, err := graft.Dep[*resource.Catalog](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:     app,
		Logger:  log,
		Catalog: catalog,
	}, nil
}
