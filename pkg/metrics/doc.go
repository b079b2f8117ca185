// Package metrics exposes Prometheus metrics for perturbation runs.
//
// Every metric carries a constant service label. The collectors are:
//
//   - perturbations_total{perturbation,strategy}
//   - documents_perturbed_total{perturbation}
//   - embedding_cache_requests_total{result}
//   - capability_call_duration_seconds{capability}
//
// *Metrics satisfies perturb.Recorder and embedcache.Recorder, so it can be
// passed to both with WithRecorder.
package metrics
