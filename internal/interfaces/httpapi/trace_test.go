package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestIsHandlerSpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.GetFeeBreakdown", want: true},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isHandlerSpan(tt.in))
		})
	}
}

func TestStartHandlerSpan_WithoutParentIsNoop(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	ctx, span := startHandlerSpan(r, "Healthz")
	defer span.End()

	assert.Equal(t, r.Context(), ctx)
	assert.False(t, span.IsRecording())
}

func TestStartHandlerSpan_TagsRouteIDs(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})

	parentCtx, parent := provider.Tracer("server").Start(context.Background(), "GET /v1/matches")
	r := httptest.NewRequest(http.MethodDelete, "/v1/matches/m1/players/p1/fee-override", nil).WithContext(parentCtx)
	r.SetPathValue("matchID", "m1")
	r.SetPathValue("playerID", "p1")

	_, span := startHandlerSpan(r, "ClearOverride")
	span.End()
	parent.End()

	var found bool
	for _, ended := range recorder.Ended() {
		if ended.Name() != "httpapi.Handler.ClearOverride" {
			continue
		}
		found = true
		assert.Equal(t, parent.SpanContext().SpanID(), ended.Parent().SpanID())
		assert.Contains(t, ended.Attributes(), attribute.String("match.id", "m1"))
		assert.Contains(t, ended.Attributes(), attribute.String("player.id", "p1"))
		assert.Contains(t, ended.Attributes(), attribute.String("football_club.operation", "ClearOverride"))
	}
	require.True(t, found)
}
