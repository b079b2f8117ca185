// Package logger provides structured JSON logging backed by zap.
//
// Every method takes a message, an optional error and any number of field
// maps, which is the shape of the Logger interfaces declared by the other
// packages of this module:
//
//	log, err := logger.NewLoggerClient(logger.Config{Level: logger.Debug, ServiceName: "perturb"})
//	if err != nil {
//		return err
//	}
//	log.Warn("documents are only used by addition and replacement, ignoring them", nil, map[string]interface{}{
//		"perturbation": "deletion",
//	})
//
// The level is read from ZAP_LOGGER_LEVEL (debug, info, warning, error).
// FXModule provides the *Logger and flushes it on shutdown.
package logger
