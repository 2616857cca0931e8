// Package tracing provides the OpenTelemetry tracer provider used by the
// HTTP API and a span exporter that writes finished spans to a zap logger.
package tracing
