package api

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/courseware/internal/adapters/config"
	"go.trai.ch/courseware/internal/adapters/logger"
	"go.trai.ch/courseware/internal/adapters/storage"
	"go.trai.ch/courseware/internal/adapters/telemetry"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
)

// NodeID is the unique identifier for the REST client Graft node.
const NodeID graft.ID = "adapter.api"

func init() {
	graft.Register(graft.Node[ports.Requester]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			storage.TokensNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Requester, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			tokens, err := graft.Dep[ports.TokenStore](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg, tokens, tracer, log), nil
		},
	})
}
