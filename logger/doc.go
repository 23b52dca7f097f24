// Package logger provides structured logging for rxkit using zerolog.
//
// It supports JSON and console output, level configuration from config
// files or LOG_* environment variables, and component-scoped loggers with
// structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("stream")
//	log.Info("delivery finished", logger.Fields(logger.FieldCount, 3))
package logger
