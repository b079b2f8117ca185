package tracer

// Config controls the OpenTelemetry tracer provider.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME" default:"open-mds-perturb"`

	// AppEnv is recorded as the deployment environment.
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV" default:"development"`

	// EnableExport sends spans to an OTLP/HTTP collector. The endpoint is read
	// from the standard OTEL_EXPORTER_OTLP_ENDPOINT variables unless Endpoint is set.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint overrides the collector URL, e.g. http://localhost:4318
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`
}
