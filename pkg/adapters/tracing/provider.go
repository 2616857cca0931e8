package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// Config holds tracer provider configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
}

// NewProvider creates a tracer provider that samples every span and exports
// it synchronously through a LogExporter.
func NewProvider(cfg Config, logger *zap.Logger) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSyncer(NewLogExporter(logger)),
		sdktrace.WithResource(res),
	)
}
