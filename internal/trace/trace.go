// Package trace wraps OpenTelemetry span creation. When tracing is disabled,
// StartSpan hands back the span already in the context and costs nothing.
package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const serviceName = "signstats"

var (
	tracer   oteltrace.Tracer
	provider *sdktrace.TracerProvider
)

// Init installs a stdout-exporting tracer provider when enabled is true.
func Init(enabled bool) error {
	if !enabled {
		return nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stdout))
	if err != nil {
		return err
	}

	install(sdktrace.WithBatcher(exporter))
	return nil
}

// InitWithExporter installs a provider that hands every span to exp as soon as
// it ends, so spans can be inspected without a flush.
func InitWithExporter(exp sdktrace.SpanExporter) {
	install(sdktrace.WithSyncer(exp))
}

func install(export sdktrace.TracerProviderOption) {
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	provider = sdktrace.NewTracerProvider(export, sdktrace.WithResource(res))
	otel.SetTracerProvider(provider)
	tracer = provider.Tracer(serviceName)
}

// Shutdown flushes pending spans and turns tracing off again.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	provider, tracer = nil, nil
	return err
}

// StartSpan starts a child span of whatever span ctx carries.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	if tracer == nil {
		return ctx, oteltrace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, oteltrace.WithAttributes(attrs...))
}

// Enabled reports whether Init installed a provider.
func Enabled() bool {
	return provider != nil
}
