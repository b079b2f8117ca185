package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	// debug, info, warning or error; anything else logs at info
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL" default:"info"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME" default:"open-mds-perturb"`
}
