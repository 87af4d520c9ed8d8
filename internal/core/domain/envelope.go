package domain

import "time"

// Envelope is the wrapper most backend endpoints answer with.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// ShapeKind says how an endpoint lays out its payload.
type ShapeKind uint8

const (
	// ShapeEnvelope wraps the payload in an Envelope under "data".
	ShapeEnvelope ShapeKind = iota
	// ShapeBare returns the payload as the whole body.
	ShapeBare
	// ShapeField returns the payload under a named top-level field.
	ShapeField
)

// Shape describes the response layout of one endpoint.
type Shape struct {
	Kind  ShapeKind
	Field string
}

// Enveloped is the shape of endpoints answering with {success, message, data}.
func Enveloped() Shape { return Shape{Kind: ShapeEnvelope} }

// Bare is the shape of endpoints answering with the payload itself.
func Bare() Shape { return Shape{Kind: ShapeBare} }

// Field is the shape of endpoints answering with the payload under name.
func Field(name string) Shape { return Shape{Kind: ShapeField, Field: name} }

// Snapshot is the result of a cached read.
type Snapshot[T any] struct {
	Data      []T
	Version   uint64
	FromCache bool
	FetchedAt time.Time
}

// ChangeEvent is broadcast when a background refresh observes new data.
type ChangeEvent[T any] struct {
	Resource string
	Data     []T
	Version  uint64
	At       time.Time
}
