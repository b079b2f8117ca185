// Package tracer provides OpenTelemetry tracing for perturbation runs.
//
// NewClient installs a global tracer provider with W3C trace context
// propagation and, when export is enabled, an OTLP/HTTP batch exporter.
// *Tracer satisfies perturb.Tracer, which opens one span per batch and one
// per example.
//
//	tr, err := tracer.NewClient(tracer.Config{ServiceName: "perturb", EnableExport: true}, log)
//	if err != nil {
//		return err
//	}
//	defer tr.Shutdown(ctx)
//
//	p, err := perturb.New(cfg, perturb.WithTracer(tr))
package tracer
