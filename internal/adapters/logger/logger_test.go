package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/courseware/internal/adapters/logger"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T, opts ...logger.Option) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New(append([]logger.Option{logger.WithOutput(buf)}, opts...)...)
	return lg, buf
}

func TestLogger_InfoWarn(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("loaded 3 courses")
	lg.Warn("serving cached clients")
	lg.Info("line1\nline2")

	assert.Equal(t, "loaded 3 courses\n! serving cached clients\nline1\nline2\n", buf.String())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "simple error",
			err:  os.ErrPermission,
			want: "✗ Error: permission denied\n",
		},
		{
			name: "multiline error",
			err:  errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"),
			want: "✗ Error: yaml: unmarshal errors:\n         line 3: cannot unmarshal\n",
		},
		{
			name: "stdlib chain stays on one line",
			err:  fmt.Errorf("load config: %w", errors.New("no such file")),
			want: "✗ Error: load config: no such file\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLogger_Error_Chains(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name: "unauthorized request",
			err: zerr.With(
				zerr.Wrap(domain.ErrUnauthorized, "session expired"),
				"path", "/courses",
			),
			goldenName: "error_unauthorized",
		},
		{
			name: "fetch failure with cause",
			err: func() error {
				cause := zerr.With(zerr.Wrap(errors.New("connection refused"), domain.ErrRequestFailed.Error()), "status_code", 502)
				return zerr.With(zerr.Wrap(cause, domain.ErrFetchFailed.Error()), "resource", "courses")
			}(),
			goldenName: "error_fetch_chain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t, logger.WithJSON(true))

	err := zerr.With(zerr.Wrap(errors.New("dial tcp: refused"), "failed to load collection"), "resource", "pedagogies")
	lg.Error(err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "failed to load collection: dial tcp: refused", record["error"])
	assert.Equal(t, "pedagogies", record["resource"])
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("pretty"))
	assert.Contains(t, buf.String(), "✗")
	buf.Reset()

	lg.SetJSON(true)
	lg.Error(errors.New("json"))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.NotContains(t, buf.String(), "✗")
	buf.Reset()

	lg.SetJSON(false)
	lg.Error(errors.New("pretty again"))
	assert.Equal(t, "✗ Error: pretty again\n", buf.String())
}

func TestLogger_SetOutput(t *testing.T) {
	lg, first := newTestLogger(t, logger.WithJSON(true))
	second := &bytes.Buffer{}

	lg.SetOutput(second)
	lg.Info("moved")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), `"msg":"moved"`, "json mode survives SetOutput")

	require.NotPanics(t, func() { lg.SetOutput(nil) })
}

func TestLogger_WithLevel(t *testing.T) {
	lg, buf := newTestLogger(t, logger.WithLevel(slog.LevelWarn))

	lg.Info("hidden")
	lg.Warn("shown")

	assert.Equal(t, "! shown\n", buf.String())
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	wg.Go(func() { lg.Info("concurrent info") })
	wg.Go(func() { lg.Warn("concurrent warn") })
	wg.Go(func() { lg.Error(errors.New("concurrent error")) })
	wg.Go(func() { lg.SetJSON(true) })
	wg.Go(func() { lg.SetJSON(false) })
	wg.Go(func() { lg.SetOutput(&bytes.Buffer{}) })
	wg.Wait()
}
