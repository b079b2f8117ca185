package metrics

// DefaultMetricsAddress is the conventional listen address of the metrics server.
const DefaultMetricsAddress = ":9090"

// Config controls how perturbation metrics are collected and exposed.
type Config struct {
	// Address is where the /metrics endpoint listens, e.g. ":9090" or
	// "127.0.0.1:9100". An empty address disables the server while the
	// collectors stay registered, which suits one-shot batch runs.
	//
	// This setting can be configured via:
	//   - Environment variable METRICS_ADDRESS
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// EnableDefaultCollectors registers the Go runtime, process and build info collectors.
	//
	// Default: true
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS" default:"true"`

	// Namespace prefixes every metric name, e.g. "open_mds" turns
	// perturbations_total into open_mds_perturbations_total.
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE" default:"open_mds"`

	// ServiceName is attached to every metric as the constant "service" label.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME" default:"perturb"`
}
