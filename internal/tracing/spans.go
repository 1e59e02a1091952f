package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanTokenize  = "prism.tokenize"
	SpanHighlight = "prism.highlight"

	// SpanPrefixHTTP prefixes spans created for API routes.
	SpanPrefixHTTP = "http."
)

// Attribute keys.
const (
	AttrLanguage   = "prism.language"
	AttrTheme      = "prism.theme"
	AttrInputBytes = "prism.input_bytes"
	AttrLines      = "prism.lines"
	AttrTokens     = "prism.tokens"
	AttrSearch     = "prism.search"
	AttrCacheHit   = "prism.cache_hit"
	AttrRequestID  = "prism.request_id"
	AttrHTTPMethod = "http.method"
	AttrHTTPStatus = "http.status_code"
)

// Events.
const (
	EventFallback = "prism.fallback"
)

// Start opens an internal span carrying the request ID from ctx, if any.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if id := RequestIDFromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String(AttrRequestID, id))
	}
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// End records err on span, sets the status, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
