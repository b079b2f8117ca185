package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	traceSpan "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Aleph-Alpha/open-mds"

// RecordErrorOnSpan records err on span and marks the span as failed.
//
// Example:
//
//	ctx, span := tracer.StartSpan(ctx, "perturb.example")
//	defer span.End()
//
//	if err != nil {
//	    tracer.RecordErrorOnSpan(span, err)
//	    return err
//	}
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// StartSpan starts a span named name as a child of any span in ctx. The
// caller must end the returned span.
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	return t.tracer.Tracer(instrumentationName).Start(ctx, name)
}

// SetAttributes adds attrs to span. Strings, ints, int64s, float64s and bools
// keep their type; anything else is stored with fmt.Sprint.
//
// Example:
//
//	tracer.SetAttributes(span, map[string]interface{}{
//	    "perturbation":   "deletion",
//	    "perturbed_frac": 0.5,
//	    "examples":       64,
//	})
func (t *Tracer) SetAttributes(span traceSpan.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))

	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}

	span.SetAttributes(attributes...)
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	return t.tracer.Shutdown(ctx)
}
