// Package logger provides a structured logging facility based on Zap.
//
// CLI runs default to console encoding with colored levels; json
// encoding is available for unattended/scheduled runs whose output is
// collected elsewhere.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (default for a CLI tool) or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("comparison finished", zap.Int("matched", n))
package logger
