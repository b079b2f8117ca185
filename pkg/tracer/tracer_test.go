package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{}) {}

func TestSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tr, err := newTracer(Config{ServiceName: "test"}, nopLogger{}, trace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })

	ctx, parent := tr.StartSpan(context.Background(), "perturb.batch")
	tr.SetAttributes(parent, map[string]interface{}{"perturbation": "deletion", "examples": 2, "frac": 0.5, "seeded": true})

	_, child := tr.StartSpan(ctx, "perturb.example")
	tr.RecordErrorOnSpan(child, errors.New("insufficient candidates"))
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "perturb.example", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())

	assert.Contains(t, spans[1].Attributes(), attribute.String("perturbation", "deletion"))
	assert.Contains(t, spans[1].Attributes(), attribute.Int("examples", 2))
	assert.Contains(t, spans[1].Attributes(), attribute.Float64("frac", 0.5))
	assert.Contains(t, spans[1].Attributes(), attribute.Bool("seeded", true))
}
