package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/zerr"
)

// fetchSpan wraps the api span of the same request and is not reported twice.
const fetchSpan = "cache.fetch"

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge reports finished request and refresh spans to a Renderer.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{
		renderer: renderer,
	}
}

// OnStart is a no-op; only completed spans are reported.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd reports s with its duration and, for failed spans, an error carrying
// the status description and HTTP status code.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() || s.Name() == fetchSpan {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "request failed"
		}
		if code, ok := statusCode(s); ok {
			desc = fmt.Sprintf("%s (HTTP %d)", desc, code)
		}
		err = zerr.New(desc)
	}

	b.renderer.OnRequest(s.Name(), s.EndTime().Sub(s.StartTime()), err)
}

func statusCode(s sdktrace.ReadOnlySpan) (int64, bool) {
	for _, kv := range s.Attributes() {
		if kv.Key == "http.status_code" {
			return kv.Value.AsInt64(), true
		}
	}
	return 0, false
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
