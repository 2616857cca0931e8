package tracing

import (
	"context"
	"sync/atomic"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// LogExporter implements sdktrace.SpanExporter by logging each span at debug level
type LogExporter struct {
	logger  *zap.Logger
	stopped atomic.Bool
}

var _ sdktrace.SpanExporter = (*LogExporter)(nil)

// NewLogExporter creates a new span exporter writing to logger
func NewLogExporter(logger *zap.Logger) *LogExporter {
	return &LogExporter{logger: logger}
}

// ExportSpans logs every span in the batch
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if e.stopped.Load() {
		return nil
	}

	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.logger.Debug("span closed", spanFields(span)...)
	}

	return nil
}

// Shutdown stops the exporter; later exports are dropped
func (e *LogExporter) Shutdown(ctx context.Context) error {
	e.stopped.Store(true)
	return nil
}

func spanFields(span sdktrace.ReadOnlySpan) []zap.Field {
	sc := span.SpanContext()
	status := span.Status()

	fields := []zap.Field{
		zap.String("span", span.Name()),
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
		zap.String("kind", span.SpanKind().String()),
		zap.Duration("duration", span.EndTime().Sub(span.StartTime())),
		zap.String("status_code", status.Code.String()),
	}
	if parent := span.Parent(); parent.IsValid() {
		fields = append(fields, zap.String("parent_span_id", parent.SpanID().String()))
	}
	if status.Description != "" {
		fields = append(fields, zap.String("status_description", status.Description))
	}
	for _, kv := range span.Attributes() {
		fields = append(fields, zap.Any(string(kv.Key), kv.Value.AsInterface()))
	}

	return fields
}
