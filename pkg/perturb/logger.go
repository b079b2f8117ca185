package perturb

// Logger defines the interface for logging operations in the perturb package.
// The concrete zap-backed logger from pkg/logger satisfies it.
//
//go:generate mockgen -source=logger.go -destination=mock_logger.go -package=perturb
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}
