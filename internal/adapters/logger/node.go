package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/courseware/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// FormatEnvVar selects JSON records when set to "json".
const FormatEnvVar = "COURSEWARE_LOG_FORMAT"

type jsonKey struct{}

// ContextWithJSON requests JSON records from the logger node.
func ContextWithJSON(ctx context.Context, enable bool) context.Context {
	return context.WithValue(ctx, jsonKey{}, enable)
}

func jsonRequested(ctx context.Context) bool {
	if enable, ok := ctx.Value(jsonKey{}).(bool); ok && enable {
		return true
	}
	return os.Getenv(FormatEnvVar) == "json"
}

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Logger, error) {
			return New(WithJSON(jsonRequested(ctx))), nil
		},
	})
}
