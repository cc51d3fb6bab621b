package observability_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedarrpandya/foodbridge/internal/observability"
)

func TestNewTags(t *testing.T) {
	testCases := []struct {
		name   string
		input  []any
		expect observability.Tags
	}{
		{
			name:   "attr",
			input:  []any{slog.Int64("rows", 3)},
			expect: observability.Tags{"rows": "3"},
		},
		{
			name:   "key and value",
			input:  []any{"chart", "categories"},
			expect: observability.Tags{"chart": "categories"},
		},
		{
			name:   "incomplete pair is dropped",
			input:  []any{slog.String("a", "b"), "dangling"},
			expect: observability.Tags{"a": "b"},
		},
		{
			name:   "other types are skipped",
			input:  []any{map[string]string{"x": "y"}, "format", "svg"},
			expect: observability.Tags{"format": "svg"},
		},
		{
			name:   "empty",
			expect: observability.Tags{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, observability.NewTags(tc.input...))
		})
	}
}

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func TestCoreLogger_CaptureError(t *testing.T) {
	var buf bytes.Buffer
	var gotErr error
	var gotTags observability.Tags

	logger := observability.NewCoreLogger(jsonLogger(&buf),
		observability.WithTags(observability.Tags{"command": "render"}),
		observability.WithCaptureException(func(err error, tags observability.Tags) {
			gotErr, gotTags = err, tags
		}),
	)

	logger.CaptureError(errors.New("decode failed"), "path", "data.json")

	require.EqualError(t, gotErr, "decode failed")
	assert.Equal(t, observability.Tags{"command": "render", "path": "data.json"}, gotTags)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "decode failed", record["msg"])
	assert.Equal(t, "render", record["command"])
	assert.Equal(t, "data.json", record["path"])
}

func TestCoreLogger_CaptureWarn(t *testing.T) {
	var buf bytes.Buffer
	var messages []string

	logger := observability.NewCoreLogger(jsonLogger(&buf),
		observability.WithCaptureMessage(func(msg string, _ observability.Tags) {
			messages = append(messages, msg)
		}),
	)
	logger.CaptureWarn("reload retried")
	logger.CaptureInfo("reloaded")

	assert.Equal(t, []string{"reload retried", "reloaded"}, messages)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Empty(t, logger.Tags())
}

func TestCoreLogger_Reraise(t *testing.T) {
	var reported any
	logger := observability.NewCoreLogger(jsonLogger(&bytes.Buffer{}),
		observability.WithReraise(func(err any, _ observability.Tags) { reported = err }),
	)

	func() {
		defer logger.Reraise()
		panic("boom")
	}()
	assert.Equal(t, "boom", reported)

	bare := observability.NewCoreLogger(jsonLogger(&bytes.Buffer{}))
	assert.PanicsWithValue(t, "again", func() {
		defer bare.Reraise()
		panic("again")
	})
}

func TestNewNoOpLogger(t *testing.T) {
	logger := observability.NewNoOpLogger()
	assert.NotPanics(t, func() {
		logger.CaptureError(errors.New("x"))
		logger.CaptureFatal(errors.New("y"))
		logger.CaptureWarn("z")
	})
	assert.PanicsWithValue(t, "boom", func() {
		defer logger.Reraise()
		panic("boom")
	})
}

func TestParseLevel(t *testing.T) {
	lvl, err := observability.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = observability.ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = observability.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = observability.ParseLevel("loud")
	assert.Error(t, err)
}

func TestTextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(observability.NewTextHandler(&buf, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("rendered chart", "chart", "forecast")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "rendered chart")
	assert.Contains(t, buf.String(), "chart=forecast")
}

func TestOpenLogFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC)

	f, err := observability.OpenLogFile(fs, "/tmp/fbcharts/logs", now)
	require.NoError(t, err)
	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := afero.ReadFile(fs, "/tmp/fbcharts/logs/fbcharts-20240501-130405.log")
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}

func TestOpenLogFile_ReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := observability.OpenLogFile(fs, "/tmp/fbcharts/logs", time.Now())
	assert.Error(t, err)
}

func TestLogDir(t *testing.T) {
	t.Setenv(observability.LogDirEnv, "/var/log/fbcharts")

	dir, err := observability.LogDir()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/fbcharts", dir)
}

func TestCaptureRateLimiter(t *testing.T) {
	rl, err := observability.NewCaptureRateLimiter(2, time.Hour)
	require.NoError(t, err)

	assert.True(t, rl.AllowCapture("a"))
	assert.False(t, rl.AllowCapture("a"))
	assert.True(t, rl.AllowCapture("b"))

	open, err := observability.NewCaptureRateLimiter(2, 0)
	require.NoError(t, err)
	assert.True(t, open.AllowCapture("a"))
	assert.True(t, open.AllowCapture("a"))

	var none *observability.CaptureRateLimiter
	assert.True(t, none.AllowCapture("a"))
}

type events struct {
	mu   sync.Mutex
	list []*sentry.Event
}

func (e *events) hook(ev *sentry.Event) *sentry.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.list = append(e.list, ev)
	return nil
}

func TestSentry(t *testing.T) {
	got := &events{}
	s, err := observability.NewSentry("https://public@example.com/1", "test", observability.WithEventHook(got.hook))
	require.NoError(t, err)
	require.NotNil(t, s)

	s.CaptureException(errors.New("payload unreadable"), observability.Tags{"path": "data.json"})
	s.CaptureException(errors.New("payload unreadable"), nil)
	s.CaptureMessage("reload retried", nil)

	require.Len(t, got.list, 2)
	assert.Equal(t, "data.json", got.list[0].Tags["path"])
	assert.Equal(t, "reload retried", got.list[1].Message)

	assert.PanicsWithValue(t, "boom", func() { s.Reraise("boom", nil) })
	assert.Len(t, got.list, 3)
}

func TestSentry_Disabled(t *testing.T) {
	s, err := observability.NewSentry("", "test")
	require.NoError(t, err)
	assert.Nil(t, s)

	assert.NotPanics(t, func() {
		s.CaptureException(errors.New("x"), nil)
		s.CaptureMessage("y", nil)
	})
	assert.True(t, s.Flush())

	logger := observability.NewCoreLogger(jsonLogger(&bytes.Buffer{}), s.LoggerOptions()...)
	assert.NotPanics(t, func() { logger.CaptureError(errors.New("z")) })
}
