// Package logging provides structured logging configuration for cardsd.
//
// This package wraps log/slog so the HTTP server, the storage backends and
// the CLI all log the same way.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "addr", ":9090")
//	logger.Error("failed to read cards", "error", err)
//
// # Output Formats
//
//   - Text: Human-readable format for development
//   - JSON: Structured format for log aggregation systems
//
// Components should accept a *slog.Logger in their constructor or via a setter.
// If no logger is provided, use logging.Nop().
package logging
