package live

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/courseware/internal/adapters/config"
	"go.trai.ch/courseware/internal/adapters/logger"
	"go.trai.ch/courseware/internal/adapters/storage"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
)

// NodeID is the unique identifier for the live feed Graft node.
const NodeID graft.ID = "adapter.live"

func init() {
	graft.Register(graft.Node[ports.LiveFeed]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, storage.TokensNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.LiveFeed, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			tokens, err := graft.Dep[ports.TokenStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.LiveURL, tokens, log), nil
		},
	})
}
