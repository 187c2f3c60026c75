package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	log "github.com/sirupsen/logrus"
)

// Setup wires the global OpenTelemetry tracer provider with an OTLP
// HTTP exporter. The endpoint comes from the standard OTEL_* env vars.
// When disabled, spans stay no-ops and the returned shutdown does
// nothing.
func Setup(ctx context.Context, enabled bool, serviceName string) (shutdown func(), err error) {
	if !enabled {
		log.Debugln("tracing disabled")
		return func() {}, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)
	otel.SetTracerProvider(traceProvider)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := traceProvider.Shutdown(shutdownCtx); err != nil {
			log.Errorf("failed to shutdown tracer provider: %s", err)
		}
	}, nil
}
