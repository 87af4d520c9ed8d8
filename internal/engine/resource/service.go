// Package resource binds backend endpoints to cached, validated collection services.
package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/courseware/internal/engine/cache"
	"go.trai.ch/zerr"
)

// Descriptor names a backend collection and the layout of its responses.
type Descriptor struct {
	// Name is the plural collection name, e.g. "categories".
	Name string
	// Singular is the record name used by live feed messages, e.g. "category".
	Singular string
	// Path is the collection endpoint relative to the API base URL.
	Path string
	// List is the response shape of GET Path.
	List domain.Shape
	// Item is the response shape of single-record endpoints.
	Item domain.Shape
}

// Record adapts an entity type to tabular output.
type Record[T any] struct {
	ID      func(T) string
	Columns []string
	Row     func(T) []string
}

// Records is a cached read with the entity type erased.
type Records struct {
	Resource  string
	Columns   []string
	Rows      [][]string
	Data      any
	Count     int
	Version   uint64
	FromCache bool
	FetchedAt time.Time
}

// Change is a ChangeEvent with the entity type erased.
type Change struct {
	Resource string
	Count    int
	Version  uint64
	At       time.Time
}

// Collection is the type-erased view of a Service used by commands and watch.
type Collection interface {
	Descriptor() Descriptor
	Records(ctx context.Context, force bool) (Records, error)
	Fetch(ctx context.Context, id string) (any, error)
	CreateJSON(ctx context.Context, raw []byte) (any, error)
	UpdateJSON(ctx context.Context, id string, raw []byte) (any, error)
	Delete(ctx context.Context, id string) error
	Invalidate()
	Changes() (<-chan Change, func())
	Start()
	Stop()
	Close()
}

var _ Collection = (*Service[domain.Category, domain.CategoryInput])(nil)

// Service is a cached collection of T mutated with In bodies.
type Service[T any, In any] struct {
	desc     Descriptor
	record   Record[T]
	api      ports.Requester
	cache    *cache.Cache[T]
	validate *validator.Validate
	logger   ports.Logger
}

// New creates a service for desc. Cache options configure its read-through cache.
func New[T any, In any](
	desc Descriptor,
	record Record[T],
	requester ports.Requester,
	log ports.Logger,
	opts ...cache.Option,
) *Service[T, In] {
	s := &Service[T, In]{
		desc:     desc,
		record:   record,
		api:      requester,
		validate: newValidator(),
		logger:   log,
	}
	s.cache = cache.New(desc.Name, s.fetchAll, append(opts, cache.WithLogger(log))...)
	return s
}

// Descriptor returns the endpoint description.
func (s *Service[T, In]) Descriptor() Descriptor {
	return s.desc
}

// Cache returns the underlying cache.
func (s *Service[T, In]) Cache() *cache.Cache[T] {
	return s.cache
}

func (s *Service[T, In]) fetchAll(ctx context.Context) ([]T, error) {
	body, err := s.api.Send(ctx, ports.Request{Method: http.MethodGet, Path: s.desc.Path})
	if err != nil {
		return nil, err
	}
	return domain.DecodeList[T](body, s.desc.List)
}

// List returns the collection through the cache.
func (s *Service[T, In]) List(ctx context.Context, force bool) (domain.Snapshot[T], error) {
	return s.cache.Get(ctx, force)
}

// Get returns one record. A fresh cached copy is used when present;
// otherwise the record is fetched directly without touching the cache.
func (s *Service[T, In]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, zerr.With(domain.ErrMissingID, "resource", s.desc.Name)
	}
	if rec, ok := s.cache.Find(func(v T) bool { return s.record.ID(v) == id }); ok {
		return rec, nil
	}

	body, err := s.api.Send(ctx, ports.Request{Method: http.MethodGet, Path: s.itemPath(id)})
	if err != nil {
		return zero, zerr.With(zerr.With(err, "resource", s.desc.Name), "id", id)
	}
	return domain.DecodeItem[T](body, s.desc.Item)
}

// Create validates in, posts it and invalidates the cache on success.
func (s *Service[T, In]) Create(ctx context.Context, in In) (T, error) {
	return s.mutate(ctx, "create", http.MethodPost, s.desc.Path, "", &in)
}

// Update validates in, puts it to the record and invalidates the cache on success.
func (s *Service[T, In]) Update(ctx context.Context, id string, in In) (T, error) {
	if id == "" {
		var zero T
		return zero, zerr.With(domain.ErrMissingID, "resource", s.desc.Name)
	}
	return s.mutate(ctx, "update", http.MethodPut, s.itemPath(id), id, &in)
}

// Delete removes the record and invalidates the cache on success.
func (s *Service[T, In]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return zerr.With(domain.ErrMissingID, "resource", s.desc.Name)
	}
	_, err := s.api.Send(ctx, ports.Request{Method: http.MethodDelete, Path: s.itemPath(id)})
	if err != nil {
		return s.failed("delete", id, err)
	}
	s.cache.Invalidate()
	return nil
}

func (s *Service[T, In]) mutate(ctx context.Context, op, method, path, id string, in *In) (T, error) {
	var zero T
	if err := s.validate.Struct(in); err != nil {
		return zero, zerr.With(validationError(err), "resource", s.desc.Name)
	}

	body, err := s.api.Send(ctx, ports.Request{Method: method, Path: path, Body: in})
	if err != nil {
		return zero, s.failed(op, id, err)
	}
	s.cache.Invalidate()

	if len(bytes.TrimSpace(body)) == 0 {
		return zero, nil
	}
	rec, err := domain.DecodeItem[T](body, s.desc.Item)
	if err != nil {
		return zero, zerr.With(err, "resource", s.desc.Name)
	}
	return rec, nil
}

// failed logs a mutation error and returns it with its context attached.
func (s *Service[T, In]) failed(op, id string, err error) error {
	err = zerr.With(err, "resource", s.desc.Name)
	if id != "" {
		err = zerr.With(err, "id", id)
	}
	s.logger.Warn(fmt.Sprintf("%s: %s failed: %v", s.desc.Name, op, err))
	return err
}

func (s *Service[T, In]) itemPath(id string) string {
	return s.desc.Path + "/" + url.PathEscape(id)
}

// Invalidate empties the cache so the next List fetches.
func (s *Service[T, In]) Invalidate() {
	s.cache.Invalidate()
}

// Subscribe registers for typed change events.
func (s *Service[T, In]) Subscribe() (<-chan domain.ChangeEvent[T], func()) {
	return s.cache.Subscribe()
}

// Start launches the background refresh once the cache is populated.
func (s *Service[T, In]) Start() { s.cache.Start() }

// Stop halts the background refresh.
func (s *Service[T, In]) Stop() { s.cache.Stop() }

// Close stops the cache and closes its subscriptions.
func (s *Service[T, In]) Close() { s.cache.Close() }

// Records returns the cached collection as table rows.
func (s *Service[T, In]) Records(ctx context.Context, force bool) (Records, error) {
	snap, err := s.List(ctx, force)
	if err != nil {
		return Records{}, err
	}

	rows := make([][]string, 0, len(snap.Data))
	for _, v := range snap.Data {
		rows = append(rows, s.record.Row(v))
	}
	return Records{
		Resource:  s.desc.Name,
		Columns:   s.record.Columns,
		Rows:      rows,
		Data:      snap.Data,
		Count:     len(snap.Data),
		Version:   snap.Version,
		FromCache: snap.FromCache,
		FetchedAt: snap.FetchedAt,
	}, nil
}

// Fetch is Get with the entity type erased.
func (s *Service[T, In]) Fetch(ctx context.Context, id string) (any, error) {
	return s.Get(ctx, id)
}

// CreateJSON decodes raw into In and creates it.
func (s *Service[T, In]) CreateJSON(ctx context.Context, raw []byte) (any, error) {
	in, err := s.decodeInput(raw)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, in)
}

// UpdateJSON decodes raw into In and updates the record.
func (s *Service[T, In]) UpdateJSON(ctx context.Context, id string, raw []byte) (any, error) {
	in, err := s.decodeInput(raw)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, id, in)
}

// decodeInput rejects fields the input type does not declare.
func (s *Service[T, In]) decodeInput(raw []byte) (In, error) {
	var in In
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, zerr.With(zerr.Wrap(err, domain.ErrValidationFailed.Error()), "resource", s.desc.Name)
	}
	return in, nil
}

// Changes forwards change events without their payload. Like the cache, it drops
// events a slow reader has no room for. The returned func unsubscribes; the
// channel is closed once forwarding stops.
func (s *Service[T, In]) Changes() (<-chan Change, func()) {
	events, cancel := s.cache.Subscribe()
	out := make(chan Change, cap(events))

	go func() {
		defer close(out)
		for ev := range events {
			change := Change{
				Resource: ev.Resource,
				Count:    len(ev.Data),
				Version:  ev.Version,
				At:       ev.At,
			}
			select {
			case out <- change:
			default:
			}
		}
	}()

	return out, cancel
}
