package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/matryer/is"
	"go.opentelemetry.io/otel/trace"
)

func TestLoggerIsStoredInContext(t *testing.T) {
	is := is.New(t)
	buf := &bytes.Buffer{}

	ctx, _ := NewLoggerWithWriter(context.Background(), buf, "Medication-Reminder", "abc123", "debug")

	logger := GetLoggerFromContext(ctx)
	logger.Info().Msg("hello")

	entry := map[string]any{}
	is.NoErr(json.Unmarshal(buf.Bytes(), &entry))
	is.Equal("medication-reminder", entry["service"])
	is.Equal("abc123", entry["version"])
	is.Equal("hello", entry["message"])
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	is := is.New(t)
	buf := &bytes.Buffer{}

	_, logger := NewLoggerWithWriter(context.Background(), buf, "svc", "v", "gurka")
	logger.Debug().Msg("hidden")

	is.Equal(0, buf.Len())
}

func TestTraceLoggerFromChassisIsVisible(t *testing.T) {
	is := is.New(t)
	buf := &bytes.Buffer{}

	ctx, _ := NewLoggerWithWriter(context.Background(), buf, "svc", "v", "info")

	_, span := trace.NewNoopTracerProvider().Tracer("test").Start(ctx, "op")
	enriched := GetLoggerFromContext(ctx).With().Str("traceID", "abc").Logger()
	_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, enriched, ctx)

	logger := GetLoggerFromContext(ctx)
	logger.Info().Msg("hello")

	entry := map[string]any{}
	is.NoErr(json.Unmarshal(buf.Bytes(), &entry))
	is.Equal("abc", entry["traceID"])
}
