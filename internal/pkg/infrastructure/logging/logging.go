package logging

import (
	"context"
	"io"
	"os"
	"strings"

	o11ylog "github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/rs/zerolog"
)

func NewLogger(ctx context.Context, serviceName, serviceVersion, level string) (context.Context, zerolog.Logger) {
	return NewLoggerWithWriter(ctx, os.Stdout, serviceName, serviceVersion, level)
}

func NewLoggerWithWriter(ctx context.Context, w io.Writer, serviceName, serviceVersion, level string) (context.Context, zerolog.Logger) {
	logger := zerolog.New(w).
		Level(parseLevel(level)).
		With().Timestamp().
		Str("service", strings.ToLower(serviceName)).
		Str("version", serviceVersion).
		Logger()

	ctx = NewContextWithLogger(ctx, logger)
	return ctx, logger
}

// NewContextWithLogger and GetLoggerFromContext share the context key with
// the chassis o11y helpers, so a logger enriched with a trace id by
// o11y.AddTraceIDToLoggerAndStoreInContext is found here as well.
func NewContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return o11ylog.NewContextWithLogger(ctx, logger)
}

func GetLoggerFromContext(ctx context.Context) zerolog.Logger {
	return o11ylog.GetFromContext(ctx)
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
