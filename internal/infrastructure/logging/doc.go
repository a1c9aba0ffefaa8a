// Package logging provides structured logging for glsqlite.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the driver and the CLI.
//
// # Features
//
//   - JSON output for machine consumption
//   - Text output for interactive use
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - A discarding logger for library callers that inject none
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # json, text
//	  output: "stderr"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("database opened", "strategy", "helper")
//	logger.Error("failed to open", "error", err)
package logging
