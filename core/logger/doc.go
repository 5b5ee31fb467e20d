// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework used by the HTTP import endpoint.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID (request id) from a Fiber context and attaches it to the
// log entry, so that all logs related to one import request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (CLI)
//   - Output: stderr (default), stdout or a file path
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Teach import finished", zap.Int("created", result.Created))
package logger
