package perturb

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const sep = "<doc>"

// fakeEmbedder maps known texts to fixed vectors.
type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	calls   int
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float32{
		"apple":  {1, 0, 0},
		"banana": {0.8, 0.6, 0},
		"cherry": {0, 0, 1},
		"durian": {0.9, 0.1, 0},
		"elder":  {0, 1, 0},
	}}
}

func (f *fakeEmbedder) ID() string { return "fake:bow" }

func (f *fakeEmbedder) Encode(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := f.vectors[t]
		if !ok {
			return nil, fmt.Errorf("no vector for %q", t)
		}
		out[i] = v
	}
	return out, nil
}

// fakeTranslator prefixes every sentence so corrupted documents are recognizable.
type fakeTranslator struct {
	batches [][]string
	err     error
}

func (f *fakeTranslator) Augment(_ context.Context, sentences []string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, sentences)
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = "bt:" + s
	}
	return out, nil
}

// shortTranslator drops the last sentence.
type shortTranslator struct{}

func (shortTranslator) Augment(_ context.Context, sentences []string) ([]string, error) {
	return sentences[:len(sentences)-1], nil
}

// periodSplitter splits on ". ".
type periodSplitter struct{}

func (periodSplitter) Split(doc string) []string {
	var out []string
	for _, s := range strings.Split(doc, ". ") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type observation struct {
	perturbation, strategy string
	documents              int
}

type fakeRecorder struct {
	observations []observation
	calls        map[string]int
}

func (r *fakeRecorder) ObservePerturbation(perturbation, strategy string, documents int) {
	r.observations = append(r.observations, observation{perturbation, strategy, documents})
}

func (r *fakeRecorder) ObserveCapabilityCall(capability string, _ time.Duration) {
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[capability]++
}

type fakeTracer struct {
	spans  []string
	errors int
}

func (t *fakeTracer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	t.spans = append(t.spans, name)
	return ctx, noop.Span{}
}

func (t *fakeTracer) RecordErrorOnSpan(trace.Span, error) { t.errors++ }

func (t *fakeTracer) SetAttributes(trace.Span, map[string]interface{}) {}

func seedPtr(s int64) *int64 { return &s }

func example(docs ...string) string { return JoinDocs(docs, sep) }
