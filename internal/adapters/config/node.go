package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/courseware/internal/adapters/logger"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config_loader"
	// SettingsNodeID is the unique identifier for the resolved configuration node.
	SettingsNodeID graft.ID = "adapter.config"
)

type pathKey struct{}

// ContextWithPath pins the configuration file used by the settings node.
func ContextWithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey{}, path)
}

// PathFromContext returns the pinned configuration file, if any.
func PathFromContext(ctx context.Context) (string, bool) {
	path, ok := ctx.Value(pathKey{}).(string)
	return path, ok && path != ""
}

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[domain.Config]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return domain.Config{}, err
			}
			if path, ok := PathFromContext(ctx); ok {
				return loader.LoadFile(path)
			}
			cwd, err := os.Getwd()
			if err != nil {
				return domain.Config{}, err
			}
			return loader.Load(cwd)
		},
	})
}
