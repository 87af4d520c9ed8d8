package storage

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/courseware/internal/adapters/config"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the key-value store Graft node.
	NodeID graft.ID = "adapter.storage"
	// TokensNodeID is the unique identifier for the token store Graft node.
	TokensNodeID graft.ID = "adapter.tokens"
)

func init() {
	graft.Register(graft.Node[ports.KeyValueStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.KeyValueStore, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return Open(cfg.StoragePath)
		},
	})

	graft.Register(graft.Node[ports.TokenStore]{
		ID:        TokensNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.TokenStore, error) {
			kv, err := graft.Dep[ports.KeyValueStore](ctx)
			if err != nil {
				return nil, err
			}
			return NewTokens(kv), nil
		},
	})
}
