package cliutil

import (
	"log/slog"

	"github.com/kedarrpandya/foodbridge/internal/config"
	"github.com/kedarrpandya/foodbridge/internal/observability"
)

// NewLogger returns the logger of a long-running command, reporting to
// Sentry when a DSN is configured. Call the returned func before exiting to
// send what is still queued.
func NewLogger(s config.Settings, handler slog.Handler, release string) (*observability.CoreLogger, func(), error) {
	reporter, err := observability.NewSentry(s.SentryDSN, release)
	if err != nil {
		return nil, nil, err
	}
	opts := append(reporter.LoggerOptions(), observability.WithTags(observability.NewTags("data", s.Data)))
	logger := observability.NewCoreLogger(slog.New(handler), opts...)
	return logger, func() { reporter.Flush() }, nil
}
