package dnlib

import (
	"log/slog"
	"os"
	"time"

	"github.com/chuacw/dnlib/tables"
)

// Logger wraps slog.Logger with dnlib-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithTable adds a table field to the logger.
func (l *Logger) WithTable(t tables.Table) *Logger {
	return &Logger{
		Logger: l.Logger.With("table", t.String()),
	}
}

// WithRid adds a rid field to the logger.
func (l *Logger) WithRid(rid uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("rid", rid),
	}
}

// LogSkippedRow logs a row dropped because it could not be read.
func (l *Logger) LogSkippedRow(t tables.Table, rid uint32, err error) {
	l.Debug("skipped unreadable row",
		"table", t.String(),
		"rid", rid,
		"error", err,
	)
}

// LogProjectionBuild logs the build of a cached sorted projection.
func (l *Logger) LogProjectionBuild(t tables.Table, column, rows int, elapsed time.Duration) {
	l.Debug("built sorted projection",
		"table", t.String(),
		"column", column,
		"rows", rows,
		"elapsed", elapsed,
	)
}

// LogTombstoneScan logs the one-time tombstone scan of a table.
func (l *Logger) LogTombstoneScan(t tables.Table, deleted uint64) {
	l.Debug("scanned table for tombstones",
		"table", t.String(),
		"deleted", deleted,
	)
}
