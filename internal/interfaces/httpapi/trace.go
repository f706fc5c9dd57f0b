package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName        = "github.com/riskibarqy/football-club/internal/interfaces/httpapi"
	handlerSpanPrefix = "httpapi.Handler."
)

var noopSpan = trace.SpanFromContext(context.Background())

// startSpan only opens handler spans, and only below an existing request
// span. Helpers and middleware get a no-op so a request stays one span deep.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !isHandlerSpan(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noopSpan
	}
	return otel.Tracer(tracerName).Start(ctx, name)
}

// startHandlerSpan opens the span of one API operation, tagged with the match
// and player the route addresses.
func startHandlerSpan(r *http.Request, operation string) (context.Context, trace.Span) {
	ctx, span := startSpan(r.Context(), handlerSpanPrefix+operation)
	if !span.IsRecording() {
		return ctx, span
	}

	attrs := []attribute.KeyValue{attribute.String("football_club.operation", operation)}
	if id := r.PathValue("matchID"); id != "" {
		attrs = append(attrs, attribute.String("match.id", id))
	}
	if id := r.PathValue("playerID"); id != "" {
		attrs = append(attrs, attribute.String("player.id", id))
	}
	span.SetAttributes(attrs...)
	return ctx, span
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
