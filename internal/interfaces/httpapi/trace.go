package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// handlerSpanPrefix limits child spans to the request handlers; middleware
// and helpers ride on the server span otelhttp already opened.
const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("pickem-api/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan opens a child span under the incoming request span. Requests
// on filtered routes (health probes) carry no parent, and spans opened
// there would become orphan roots, so those return the noop span instead.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !strings.HasPrefix(name, handlerSpanPrefix) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}
