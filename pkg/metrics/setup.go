package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// capabilityBuckets spans fast cache-backed lookups up to slow model calls.
var capabilityBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// Metrics owns the Prometheus registry, the perturbation collectors and the
// HTTP server exposing them. It satisfies perturb.Recorder and embedcache.Recorder.
type Metrics struct {
	// Server exposes /metrics. It is nil when no address is configured.
	Server   *http.Server
	Registry *prometheus.Registry

	serviceName string

	perturbations      *prometheus.CounterVec
	documentsPerturbed *prometheus.CounterVec
	cacheRequests      *prometheus.CounterVec
	capabilityDuration *prometheus.HistogramVec
}

func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m := &Metrics{
		Registry:    registry,
		serviceName: cfg.ServiceName,
	}

	m.perturbations = createCounterVec(cfg.Namespace, "perturbations_total",
		"Number of perturbed examples", []string{"perturbation", "strategy"})
	m.documentsPerturbed = createCounterVec(cfg.Namespace, "documents_perturbed_total",
		"Number of documents affected by perturbations", []string{"perturbation"})
	m.cacheRequests = createCounterVec(cfg.Namespace, "embedding_cache_requests_total",
		"Embedding cache lookups by result", []string{"result"})
	m.capabilityDuration = createHistogramVec(cfg.Namespace, "capability_call_duration_seconds",
		"Latency of embedding and translation calls", []string{"capability"}, capabilityBuckets)

	wrappedRegistry.MustRegister(m.perturbations, m.documentsPerturbed, m.cacheRequests, m.capabilityDuration)

	if cfg.Address != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		m.Server = &http.Server{
			Addr:    cfg.Address,
			Handler: mux,
		}
	}

	return m
}
