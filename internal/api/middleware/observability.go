package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
)

// Instrument adds OpenTelemetry tracing and metrics to one route.
// route is the mux pattern, which keeps metric cardinality bounded.
func Instrument(route string, metrics *observability.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := observability.StartSpan(r.Context(), route)
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
			attribute.String("http.user_agent", r.UserAgent()),
		)

		rw := newStatusRecorder(w)
		start := time.Now()

		next.ServeHTTP(rw, r.WithContext(ctx))

		observability.RecordRequestMetric(ctx, metrics, r.Method, route, rw.statusCode, time.Since(start))
		span.SetAttributes(attribute.Int("http.status_code", rw.statusCode))
	})
}
