package resource_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/courseware/internal/core/ports/mocks"
	"go.trai.ch/courseware/internal/engine/cache"
	"go.trai.ch/courseware/internal/engine/resource"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func get(path string) ports.Request {
	return ports.Request{Method: http.MethodGet, Path: path}
}

func reply(body string) func(context.Context, ports.Request) ([]byte, error) {
	return func(context.Context, ports.Request) ([]byte, error) { return []byte(body), nil }
}

func newCategories(t *testing.T, opts ...cache.Option) (*resource.Categories, *mocks.MockRequester, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	req := mocks.NewMockRequester(ctrl)
	log := mocks.NewMockLogger(ctrl)
	opts = append([]cache.Option{cache.WithRefreshInterval(0)}, opts...)
	svc := resource.NewCategories(req, log, opts...)
	t.Cleanup(svc.Close)
	return svc, req, log
}

func TestService_ListReadsThroughCache(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		svc, req, _ := newCategories(t)
		req.EXPECT().Send(gomock.Any(), get("/category")).
			DoAndReturn(reply(`{"success":true,"data":[{"_id":"1","name":"Cloud"}]}`)).
			Times(1)

		first, err := svc.List(t.Context(), false)
		require.NoError(t, err)
		assert.False(t, first.FromCache)
		assert.Equal(t, uint64(1), first.Version)
		assert.Equal(t, []domain.Category{{ID: "1", Name: "Cloud"}}, first.Data)

		time.Sleep(10 * time.Minute)

		second, err := svc.List(t.Context(), false)
		require.NoError(t, err)
		assert.True(t, second.FromCache)
		assert.Equal(t, first.Data, second.Data)
	})
}

func TestService_CreateInvalidatesCache(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		svc, req, _ := newCategories(t)
		gomock.InOrder(
			req.EXPECT().Send(gomock.Any(), get("/category")).
				DoAndReturn(reply(`{"success":true,"data":[{"_id":"1","name":"Cloud"}]}`)),
			req.EXPECT().Send(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, r ports.Request) ([]byte, error) {
					assert.Equal(t, http.MethodPost, r.Method)
					assert.Equal(t, "/category", r.Path)
					in, ok := r.Body.(*domain.CategoryInput)
					require.True(t, ok)
					assert.Equal(t, "Data", in.Name)
					return []byte(`{"success":true,"data":{"_id":"2","name":"Data"}}`), nil
				}),
			req.EXPECT().Send(gomock.Any(), get("/category")).
				DoAndReturn(reply(`{"success":true,"data":[{"_id":"1","name":"Cloud"},{"_id":"2","name":"Data"}]}`)),
		)

		before, err := svc.List(t.Context(), false)
		require.NoError(t, err)
		require.Len(t, before.Data, 1)

		created, err := svc.Create(t.Context(), domain.CategoryInput{Name: "Data"})
		require.NoError(t, err)
		assert.Equal(t, domain.Category{ID: "2", Name: "Data"}, created)
		assert.Equal(t, uint64(0), svc.Cache().Version())

		after, err := svc.List(t.Context(), false)
		require.NoError(t, err)
		assert.False(t, after.FromCache)
		assert.Len(t, after.Data, 2)
		assert.Equal(t, uint64(1), after.Version)
	})
}

func TestService_CreateValidatesBeforeNetwork(t *testing.T) {
	svc, _, _ := newCategories(t)

	_, err := svc.Create(t.Context(), domain.CategoryInput{Name: ""})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Contains(t, err.Error(), "name is required")
}

func TestService_CreateFailureKeepsCache(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		svc, req, log := newCategories(t)
		boom := errors.New("connection reset")
		gomock.InOrder(
			req.EXPECT().Send(gomock.Any(), get("/category")).
				DoAndReturn(reply(`{"success":true,"data":[{"_id":"1","name":"Cloud"}]}`)),
			req.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil, boom),
		)
		log.EXPECT().Warn(gomock.Any())

		_, err := svc.List(t.Context(), false)
		require.NoError(t, err)

		_, err = svc.Create(t.Context(), domain.CategoryInput{Name: "Data"})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)

		snap, err := svc.List(t.Context(), false)
		require.NoError(t, err)
		assert.True(t, snap.FromCache)
		assert.Equal(t, uint64(1), snap.Version)
	})
}

func TestService_UpdateAndDelete(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		svc, req, _ := newCategories(t)
		gomock.InOrder(
			req.EXPECT().Send(gomock.Any(), get("/category")).
				DoAndReturn(reply(`{"success":true,"data":[{"_id":"c 1","name":"Cloud"}]}`)),
			req.EXPECT().Send(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, r ports.Request) ([]byte, error) {
					assert.Equal(t, http.MethodPut, r.Method)
					assert.Equal(t, "/category/c%201", r.Path)
					return []byte(`{"success":true,"data":{"_id":"c 1","name":"Cloud Ops"}}`), nil
				}),
			req.EXPECT().Send(gomock.Any(), get("/category")).
				DoAndReturn(reply(`{"success":true,"data":[{"_id":"c 1","name":"Cloud Ops"}]}`)),
			req.EXPECT().Send(gomock.Any(), ports.Request{Method: http.MethodDelete, Path: "/category/c%201"}).
				Return([]byte(`{"success":true}`), nil),
		)

		_, err := svc.List(t.Context(), false)
		require.NoError(t, err)

		updated, err := svc.Update(t.Context(), "c 1", domain.CategoryInput{Name: "Cloud Ops"})
		require.NoError(t, err)
		assert.Equal(t, "Cloud Ops", updated.Name)

		snap, err := svc.List(t.Context(), false)
		require.NoError(t, err)
		assert.Equal(t, "Cloud Ops", snap.Data[0].Name)

		require.NoError(t, svc.Delete(t.Context(), "c 1"))
		_, ok := svc.Cache().Peek()
		assert.False(t, ok)
	})
}

func TestService_MutationsRequireID(t *testing.T) {
	svc, _, _ := newCategories(t)

	_, err := svc.Update(t.Context(), "", domain.CategoryInput{Name: "Cloud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrMissingID.Error())

	err = svc.Delete(t.Context(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrMissingID.Error())

	_, err = svc.Get(t.Context(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrMissingID.Error())
}

func TestService_DeleteFailureIsLogged(t *testing.T) {
	svc, req, log := newCategories(t)
	req.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil, zerr.Wrap(domain.ErrUnauthorized, "jwt expired"))
	log.EXPECT().Warn(gomock.Any())

	err := svc.Delete(t.Context(), "c1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Get(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		svc, req, _ := newCategories(t)
		gomock.InOrder(
			req.EXPECT().Send(gomock.Any(), get("/category")).
				DoAndReturn(reply(`{"success":true,"data":[{"_id":"1","name":"Cloud"}]}`)),
			req.EXPECT().Send(gomock.Any(), get("/category/2")).
				DoAndReturn(reply(`{"success":true,"data":{"_id":"2","name":"Data"}}`)),
			req.EXPECT().Send(gomock.Any(), get("/category/1")).
				DoAndReturn(reply(`{"success":true,"data":{"_id":"1","name":"Cloud v2"}}`)),
		)

		_, err := svc.List(t.Context(), false)
		require.NoError(t, err)

		cached, err := svc.Get(t.Context(), "1")
		require.NoError(t, err)
		assert.Equal(t, "Cloud", cached.Name)

		direct, err := svc.Get(t.Context(), "2")
		require.NoError(t, err)
		assert.Equal(t, "Data", direct.Name)

		time.Sleep(domain.DefaultCacheTTL)

		expired, err := svc.Get(t.Context(), "1")
		require.NoError(t, err)
		assert.Equal(t, "Cloud v2", expired.Name)
	})
}

func TestService_GetNotFound(t *testing.T) {
	svc, req, _ := newCategories(t)
	req.EXPECT().Send(gomock.Any(), get("/category/404")).Return(nil, zerr.Wrap(domain.ErrNotFound, "category not found"))

	_, err := svc.Get(t.Context(), "404")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_CreateJSON(t *testing.T) {
	t.Run("decodes input", func(t *testing.T) {
		svc, req, _ := newCategories(t)
		req.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(reply(`{"success":true,"data":{"_id":"9","name":"Security"}}`))

		got, err := svc.CreateJSON(t.Context(), []byte(`{"name":"Security"}`))
		require.NoError(t, err)
		assert.Equal(t, domain.Category{ID: "9", Name: "Security"}, got)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		svc, _, _ := newCategories(t)

		_, err := svc.CreateJSON(t.Context(), []byte(`{"name":"Security","colour":"red"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrValidationFailed.Error())
	})

	t.Run("update requires valid body", func(t *testing.T) {
		svc, _, _ := newCategories(t)

		_, err := svc.UpdateJSON(t.Context(), "1", []byte(`{"name":`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrValidationFailed.Error())
	})
}

func TestService_Records(t *testing.T) {
	svc, req, _ := newCategories(t)
	req.EXPECT().Send(gomock.Any(), get("/category")).
		DoAndReturn(reply(`{"success":true,"data":[{"_id":"1","name":"Cloud","description":"Infra and ops"}]}`))

	recs, err := svc.Records(t.Context(), false)
	require.NoError(t, err)

	assert.Equal(t, "categories", recs.Resource)
	assert.Equal(t, []string{"ID", "NAME", "DESCRIPTION"}, recs.Columns)
	assert.Equal(t, [][]string{{"1", "Cloud", "Infra and ops"}}, recs.Rows)
	assert.Equal(t, 1, recs.Count)
	assert.Equal(t, []domain.Category{{ID: "1", Name: "Cloud", Description: "Infra and ops"}}, recs.Data)
}

func TestService_Changes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		req := mocks.NewMockRequester(ctrl)
		log := mocks.NewMockLogger(ctrl)
		gomock.InOrder(
			req.EXPECT().Send(gomock.Any(), get("/category")).
				DoAndReturn(reply(`{"success":true,"data":[{"_id":"1"}]}`)),
			req.EXPECT().Send(gomock.Any(), get("/category")).
				DoAndReturn(reply(`{"success":true,"data":[{"_id":"1"},{"_id":"2"}]}`)).
				AnyTimes(),
		)

		svc := resource.NewCategories(req, log, cache.WithRefreshInterval(time.Minute))
		defer svc.Close()

		changes, unsubscribe := svc.Changes()

		_, err := svc.List(t.Context(), false)
		require.NoError(t, err)

		time.Sleep(time.Minute)
		synctest.Wait()

		select {
		case ch := <-changes:
			assert.Equal(t, resource.Change{Resource: "categories", Count: 2, Version: 2, At: ch.At}, ch)
		default:
			t.Fatal("expected a change after the refresh")
		}

		unsubscribe()
		synctest.Wait()
		_, open := <-changes
		assert.False(t, open)
	})
}
