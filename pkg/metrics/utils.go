package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// createCounterVec defines a new CounterVec with standard options.
func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

// ObservePerturbation counts one perturbed example and the documents it touched.
func (m *Metrics) ObservePerturbation(perturbation, strategy string, documents int) {
	m.perturbations.WithLabelValues(perturbation, strategy).Inc()
	m.documentsPerturbed.WithLabelValues(perturbation).Add(float64(documents))
}

// ObserveCapabilityCall records the latency of an embedding or translation call.
func (m *Metrics) ObserveCapabilityCall(capability string, d time.Duration) {
	m.capabilityDuration.WithLabelValues(capability).Observe(d.Seconds())
}

// ObserveCacheLookup counts an embedding cache hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}
