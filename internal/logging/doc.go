// Package logging provides structured logging for boardctl.
//
// This package wraps Go's log/slog to produce JSON-formatted logs with
// persistent context attributes, so a plan-apply run can be reconstructed
// from its log file: which run, which stage, which project, and what each
// remote call did.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Context propagation (run ID, stage, project ID)
//   - Size-based log rotation with a configurable backup count
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. The [Logger] type
// uses slog internally, and the rotating writer protects file operations
// with a mutex. Child loggers created via With* methods share the
// underlying writer safely.
//
// # Basic Usage
//
// Create a logger writing to a directory:
//
//	logger, err := logging.New(dir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("sprint created", "sprint", name, "id", sprint.ID)
//
// # Context Propagation
//
// Create child loggers with persistent attributes:
//
//	runLogger := logger.WithRun(runID)
//	stageLogger := runLogger.WithStage("backlog")
//
// Every entry written through stageLogger carries both the run ID and the
// stage name.
package logging
