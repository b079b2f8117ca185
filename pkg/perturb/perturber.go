package perturb

import (
	"context"
	"fmt"
	"math"
	"slices"

	"go.opentelemetry.io/otel/trace"
)

// Request carries the per-call arguments of Perturb.
type Request struct {
	// PerturbedFrac is the fraction of each example's documents to perturb,
	// rounded up to a whole count. Zero is treated as absent.
	PerturbedFrac float64

	// Targets optionally holds one reference per input, e.g. the gold summary.
	// When set it must have the same length as the inputs.
	Targets []string

	// Documents optionally extends the candidate pool used by addition and replacement.
	Documents []string
}

// Perturb applies the configured perturbation to every input and returns the
// perturbed examples in input order.
//
// Argument errors are reported before any example is processed. The first
// per-example failure aborts the batch.
func (p *Perturber) Perturb(ctx context.Context, inputs []string, req Request) ([]string, error) {
	if req.Targets != nil && len(req.Targets) != len(inputs) {
		return nil, fmt.Errorf("%w: %d targets for %d inputs", ErrArgumentMismatch, len(req.Targets), len(inputs))
	}
	if math.IsNaN(req.PerturbedFrac) || req.PerturbedFrac < 0 || req.PerturbedFrac > 1 {
		return nil, fmt.Errorf("%w: perturbed_frac must be in [0, 1], got %v", ErrInvalidArgument, req.PerturbedFrac)
	}

	if p.perturbation != Sorting && req.PerturbedFrac == 0 {
		p.logger.Warn("perturbed_frac is zero, returning inputs unchanged", nil, map[string]interface{}{
			"perturbation": string(p.perturbation),
		})
		return slices.Clone(inputs), nil
	}

	if len(req.Documents) > 0 && !p.perturbation.usesCandidatePool() {
		p.logger.Warn("documents are only used by addition and replacement, ignoring them", nil, map[string]interface{}{
			"perturbation": string(p.perturbation),
			"documents":    len(req.Documents),
		})
	}

	targets := req.Targets
	if p.strategy == Random && slices.ContainsFunc(targets, func(t string) bool { return t != "" }) {
		p.logger.Warn("targets are ignored by the random strategy", nil, map[string]interface{}{
			"perturbation": string(p.perturbation),
		})
		targets = nil
	}

	var pool []string
	if p.perturbation.usesCandidatePool() {
		pool = dedupe(append(slices.Clone(inputs), req.Documents...))
	}

	if p.tracer != nil {
		var span trace.Span
		ctx, span = p.startSpan(ctx, "perturb.batch", map[string]interface{}{
			"perturbation":   string(p.perturbation),
			"strategy":       string(p.strategy),
			"perturbed_frac": req.PerturbedFrac,
			"examples":       len(inputs),
		})
		defer span.End()
	}

	out := make([]string, len(inputs))
	for i, example := range inputs {
		var target string
		if i < len(targets) {
			target = targets[i]
		}

		perturbed, err := p.perturbExample(ctx, i, operand{
			example: example,
			frac:    req.PerturbedFrac,
			target:  target,
			pool:    pool,
		})
		if err != nil {
			return nil, fmt.Errorf("perturbing example %d: %w", i, err)
		}
		out[i] = perturbed
	}

	p.logger.Debug("perturbed batch", nil, map[string]interface{}{
		"perturbation": string(p.perturbation),
		"strategy":     string(p.strategy),
		"examples":     len(inputs),
	})
	return out, nil
}

func (p *Perturber) perturbExample(ctx context.Context, i int, op operand) (string, error) {
	if p.tracer == nil {
		perturbed, n, err := p.apply(ctx, op)
		if err == nil {
			p.observe(n)
		}
		return perturbed, err
	}

	ctx, span := p.startSpan(ctx, "perturb.example", map[string]interface{}{"example.index": i})
	defer span.End()

	perturbed, n, err := p.apply(ctx, op)
	if err != nil {
		p.tracer.RecordErrorOnSpan(span, err)
		return "", err
	}
	p.tracer.SetAttributes(span, map[string]interface{}{"documents.perturbed": n})
	p.observe(n)
	return perturbed, nil
}

func (p *Perturber) startSpan(ctx context.Context, name string, attrs map[string]interface{}) (context.Context, trace.Span) {
	ctx, span := p.tracer.StartSpan(ctx, name)
	p.tracer.SetAttributes(span, attrs)
	return ctx, span
}

func (p *Perturber) observe(n int) {
	if p.recorder != nil {
		p.recorder.ObservePerturbation(string(p.perturbation), string(p.strategy), n)
	}
}
