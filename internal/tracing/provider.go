package tracing

import (
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Init installs the propagator and a global SDK tracer provider tagged with
// service. Finished spans are written to exportTo as JSON when it is non-nil;
// otherwise they are recorded and sampled but not exported. Callers must
// Shutdown the returned provider to flush pending spans.
func Init(service string, exportTo io.Writer) (*sdktrace.TracerProvider, error) {
	InstallPropagator()

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", service))),
	}
	if exportTo != nil {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(exportTo))
		if err != nil {
			return nil, fmt.Errorf("tracing.Init: exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp, nil
}
