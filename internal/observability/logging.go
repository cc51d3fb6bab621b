// Package observability provides the process logger and error reporting.
package observability

import (
	"context"
	"io"
	"log/slog"
	"maps"
)

// Tags are key/value pairs attached to reported errors.
type Tags map[string]string

// NewTags collects tags from slog attributes and key/value pairs, the same
// arguments slog's logging methods accept. Incomplete pairs and values of
// other types are skipped.
func NewTags(args ...any) Tags {
	tags := Tags{}
	for len(args) > 0 {
		switch x := args[0].(type) {
		case slog.Attr:
			tags[x.Key] = x.Value.String()
			args = args[1:]
		case string:
			if len(args) < 2 {
				return tags
			}
			attr := slog.Any(x, args[1])
			tags[attr.Key] = attr.Value.String()
			args = args[2:]
		default:
			args = args[1:]
		}
	}
	return tags
}

// LevelFatal is logged for errors the process cannot recover from.
const LevelFatal = slog.Level(12)

// CoreLogger is a structured logger that can also forward errors and
// warnings to an error reporter.
type CoreLogger struct {
	*slog.Logger

	tags             Tags
	captureException func(err error, tags Tags)
	captureMessage   func(msg string, tags Tags)
	reraise          func(err any, tags Tags)
}

// CoreLoggerOption configures a CoreLogger.
type CoreLoggerOption func(*CoreLogger)

// WithCaptureException sets where CaptureError and CaptureFatal report.
func WithCaptureException(f func(err error, tags Tags)) CoreLoggerOption {
	return func(cl *CoreLogger) { cl.captureException = f }
}

// WithCaptureMessage sets where CaptureWarn and CaptureInfo report.
func WithCaptureMessage(f func(msg string, tags Tags)) CoreLoggerOption {
	return func(cl *CoreLogger) { cl.captureMessage = f }
}

// WithReraise sets what Reraise does with a recovered panic.
func WithReraise(f func(err any, tags Tags)) CoreLoggerOption {
	return func(cl *CoreLogger) { cl.reraise = f }
}

// WithTags attaches tags to every record and report.
func WithTags(tags Tags) CoreLoggerOption {
	return func(cl *CoreLogger) { cl.tags = maps.Clone(tags) }
}

// NewCoreLogger wraps logger.
func NewCoreLogger(logger *slog.Logger, opts ...CoreLoggerOption) *CoreLogger {
	cl := &CoreLogger{tags: Tags{}}
	for _, opt := range opts {
		opt(cl)
	}
	if cl.tags == nil {
		cl.tags = Tags{}
	}

	args := make([]any, 0, len(cl.tags))
	for k, v := range cl.tags {
		args = append(args, slog.String(k, v))
	}
	cl.Logger = logger.With(args...)
	return cl
}

// NewNoOpLogger returns a logger that drops every record and report.
// Panics passed to Reraise still propagate.
func NewNoOpLogger() *CoreLogger {
	return NewCoreLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)),
		WithCaptureException(func(error, Tags) {}),
		WithCaptureMessage(func(string, Tags) {}),
	)
}

func (cl *CoreLogger) tagsWithArgs(args ...any) Tags {
	tags := NewTags(args...)
	maps.Copy(tags, cl.tags)
	return tags
}

// Tags returns the tags attached to the logger.
func (cl *CoreLogger) Tags() Tags {
	return cl.tags
}

// CaptureError logs err and reports it.
func (cl *CoreLogger) CaptureError(err error, args ...any) {
	cl.Logger.Error(err.Error(), args...)
	if cl.captureException != nil {
		cl.captureException(err, cl.tagsWithArgs(args...))
	}
}

// CaptureFatal logs err at the fatal level and reports it.
func (cl *CoreLogger) CaptureFatal(err error, args ...any) {
	cl.Logger.Log(context.Background(), LevelFatal, err.Error(), args...)
	if cl.captureException != nil {
		cl.captureException(err, cl.tagsWithArgs(args...))
	}
}

// CaptureWarn logs a warning and reports it.
func (cl *CoreLogger) CaptureWarn(msg string, args ...any) {
	cl.Logger.Warn(msg, args...)
	if cl.captureMessage != nil {
		cl.captureMessage(msg, cl.tagsWithArgs(args...))
	}
}

// CaptureInfo logs an info message and reports it.
func (cl *CoreLogger) CaptureInfo(msg string, args ...any) {
	cl.Logger.Info(msg, args...)
	if cl.captureMessage != nil {
		cl.captureMessage(msg, cl.tagsWithArgs(args...))
	}
}

// Reraise reports a panic in progress. It must be deferred directly.
// Without a reraise function the panic continues unreported.
func (cl *CoreLogger) Reraise(args ...any) {
	err := recover()
	if err == nil {
		return
	}
	if cl.reraise == nil {
		panic(err)
	}
	cl.reraise(err, cl.tagsWithArgs(args...))
}
