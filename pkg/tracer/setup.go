package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Logger defines the interface for logging operations in the tracer package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Tracer wraps an OpenTelemetry TracerProvider. It satisfies perturb.Tracer and
// is safe for concurrent use.
type Tracer struct {
	tracer *trace.TracerProvider
	logger Logger
}

// NewClient builds the tracer provider and installs it as the global provider.
//
// With EnableExport set, spans are batched to an OTLP/HTTP collector. Without
// it spans are recorded but never leave the process.
func NewClient(cfg Config, logger Logger) (*Tracer, error) {
	return newTracer(cfg, logger)
}

func newTracer(cfg Config, logger Logger, extra ...trace.TracerProviderOption) (*Tracer, error) {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		var clientOpts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			clientOpts = append(clientOpts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
		}
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(clientOpts...))
		if err != nil {
			return nil, fmt.Errorf("tracer: create otlp exporter: %w", err)
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))
	options = append(options, extra...)

	tp := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.Info("tracer initialized", nil, map[string]interface{}{
		"service": cfg.ServiceName,
		"export":  cfg.EnableExport,
	})
	return &Tracer{tracer: tp, logger: logger}, nil
}
