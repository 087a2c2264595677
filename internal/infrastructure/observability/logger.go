package observability

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// InitLogger configures the process-wide zerolog logger for the API, the
// seed script and anything else that shares log.Logger. Development gets
// human-readable console output; other environments emit JSON lines with
// caller info. An empty or unrecognised level means info.
func InitLogger(serviceName, env, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(parseLevel(level))

	var base zerolog.Logger
	if env == "development" {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		base = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Caller().
			Logger()
	}

	log.Logger = base.With().Str("service", serviceName).Logger()

	// log.Ctx falls back to this outside a request, e.g. async lead notifications
	zerolog.DefaultContextLogger = &log.Logger
}

func parseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// LoggerFromContext returns the request logger carrying the active span's
// trace and span ids, so lead and checkout logs join up with their traces.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	logger := log.Ctx(ctx).With().Logger()

	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return &logger
	}

	logger = logger.With().
		Str("trace_id", sc.TraceID().String()).
		Str("span_id", sc.SpanID().String()).
		Logger()
	return &logger
}
