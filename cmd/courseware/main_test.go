package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/courseware/internal/adapters/config"
	"go.trai.ch/courseware/internal/app"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports/mocks"
	"go.trai.ch/courseware/internal/engine/cache"
	"go.trai.ch/courseware/internal/engine/resource"
	"go.uber.org/mock/gomock"
)

type testApp struct {
	app       *app.App
	requester *mocks.MockRequester
	logger    *mocks.MockLogger
	tokens    *mocks.MockTokenStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)

	ta := &testApp{
		requester: mocks.NewMockRequester(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		tokens:    mocks.NewMockTokenStore(ctrl),
	}
	catalog := resource.NewCatalog(ta.requester, ta.logger, cache.WithRefreshInterval(0))
	t.Cleanup(catalog.Close)

	ta.app = app.New(catalog, ta.tokens, mocks.NewMockKeyValueStore(ctrl), mocks.NewMockLiveFeed(ctrl), nil, ta.logger)
	return ta
}

func (ta *testApp) provider() ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: ta.app, Logger: ta.logger}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ta := newTestApp(t)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, ta.provider())

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "courseware version")
}

// TestRun_List verifies that command output reaches the given writers.
func TestRun_List(t *testing.T) {
	ta := newTestApp(t)
	ta.requester.EXPECT().Send(gomock.Any(), gomock.Any()).
		Return([]byte(`[{"_id":"co1","title":"Go"}]`), nil)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"courses", "list", "--json"}, stdout, stderr, ta.provider())

	require.Equal(t, 0, exitCode)
	assert.JSONEq(t, `[{"_id":"co1","title":"Go"}]`, stdout.String())
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when a command fails.
func TestRun_ExecutionError(t *testing.T) {
	ta := newTestApp(t)
	ta.tokens.EXPECT().Token().Return("", false)
	ta.logger.EXPECT().Error(domain.ErrTokenMissing)

	exitCode := run(context.Background(), []string{"auth", "status"}, new(bytes.Buffer), new(bytes.Buffer), ta.provider())

	assert.Equal(t, 1, exitCode)
}

// TestRun_CleanupCalled verifies that the provider's cleanup runs after the command.
func TestRun_CleanupCalled(t *testing.T) {
	ta := newTestApp(t)
	cleaned := false
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: ta.app, Logger: ta.logger}, func() { cleaned = true }, nil
	}

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.True(t, cleaned)
}

// TestRun_GlobalFlags verifies that --config reaches the provider's context.
func TestRun_GlobalFlags(t *testing.T) {
	ta := newTestApp(t)
	var gotPath string
	provider := func(ctx context.Context) (*app.Components, func(), error) {
		gotPath, _ = config.PathFromContext(ctx)
		return &app.Components{App: ta.app, Logger: ta.logger}, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"--config=ci.yaml", "version"}, new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "ci.yaml", gotPath)
}

func TestWithGlobalFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"long form", []string{"--config", "a.yaml", "clients", "list"}, "a.yaml"},
		{"short form", []string{"clients", "-c", "b.yaml", "list"}, "b.yaml"},
		{"equals form", []string{"--config=c.yaml"}, "c.yaml"},
		{"after terminator", []string{"--", "--config", "d.yaml"}, ""},
		{"missing value", []string{"--config"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := withGlobalFlags(context.Background(), tt.args)
			got, _ := config.PathFromContext(ctx)
			assert.Equal(t, tt.want, got)
		})
	}
}
