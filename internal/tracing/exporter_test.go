package tracing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func stubSpan(name string) sdktrace.ReadOnlySpan {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return tracetest.SpanStub{
		Name: name,
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: trace.TraceID{1},
			SpanID:  trace.SpanID{2},
		}),
		Parent: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: trace.TraceID{1},
			SpanID:  trace.SpanID{3},
		}),
		SpanKind:   trace.SpanKindServer,
		StartTime:  start,
		EndTime:    start.Add(1500 * time.Microsecond),
		Status:     sdktrace.Status{Code: codes.Error, Description: "boom"},
		Attributes: []attribute.KeyValue{attribute.String(AttrLanguage, "go"), attribute.Int(AttrTokens, 7)},
		Events: []sdktrace.Event{{
			Name:       EventFallback,
			Time:       start,
			Attributes: []attribute.KeyValue{attribute.Bool(AttrCacheHit, false)},
		}},
	}.Snapshot()
}

func TestWriterExporter_WritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewWriterExporter(&buf)

	err := exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stubSpan("a"), stubSpan("b")})
	require.NoError(t, err)

	scanner := bufio.NewScanner(&buf)
	var records []SpanRecord
	for scanner.Scan() {
		var r SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		records = append(records, r)
	}
	require.Len(t, records, 2)

	r := records[0]
	require.Equal(t, "a", r.Name)
	require.Equal(t, "SERVER", r.Kind)
	require.Equal(t, "ERROR", r.Status)
	require.Equal(t, "boom", r.StatusMsg)
	require.Equal(t, trace.SpanID{3}.String(), r.ParentSpanID)
	require.InDelta(t, 1.5, r.DurationMs, 0.0001)
	require.Equal(t, "go", r.Attributes[AttrLanguage])
	require.EqualValues(t, 7, r.Attributes[AttrTokens])
	require.Len(t, r.Events, 1)
	require.Equal(t, EventFallback, r.Events[0].Name)
}

func TestWriterExporter_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriterExporter(&buf).ExportSpans(context.Background(), nil))
	require.Zero(t, buf.Len())
}

func TestFileExporter_AppendsAndShutsDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "traces.jsonl")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))

	exporter, err := NewFileExporter(path)
	require.NoError(t, err)
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stubSpan("x")}))
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()))

	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stubSpan("y")})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, bytes.Count(data, []byte("\n")))
}

func TestStartEnd_RecordsStatus(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")

	ctx := ContextWithRequestID(context.Background(), "req-1")
	_, span := Start(ctx, tracer, SpanTokenize, attribute.String(AttrLanguage, "python"))
	End(span, nil)

	_, span = Start(context.Background(), tracer, SpanHighlight)
	End(span, errors.New("bad"))

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	ok := NewSpanRecord(ended[0])
	require.Equal(t, "OK", ok.Status)
	require.Equal(t, "INTERNAL", ok.Kind)
	require.Equal(t, "req-1", ok.Attributes[AttrRequestID])
	require.Equal(t, "python", ok.Attributes[AttrLanguage])

	failed := NewSpanRecord(ended[1])
	require.Equal(t, "ERROR", failed.Status)
	require.NotContains(t, failed.Attributes, AttrRequestID)
	require.Len(t, failed.Events, 1) // the recorded error
}
