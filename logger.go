package bitvec

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger wraps slog.Logger with bitvec-specific fields.
type Logger struct {
	*slog.Logger
}

var logger atomic.Pointer[Logger]

// NewLogger creates a new Logger with the given handler.
// If handler is nil, a text handler writing to stderr is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// SetLogger installs the logger used by the package. Passing nil restores
// the no-op logger.
func SetLogger(l *Logger) {
	if l == nil {
		l = NoopLogger()
	}
	logger.Store(l)
}

// GetLogger returns the logger installed with SetLogger.
func GetLogger() *Logger {
	return defaultLogger()
}

func defaultLogger() *Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	l := NoopLogger()
	if logger.CompareAndSwap(nil, l) {
		return l
	}
	return logger.Load()
}

// WithKey adds the redis key of a bit vector to the logger.
func (l *Logger) WithKey(key string) *Logger {
	return &Logger{Logger: l.Logger.With("key", key)}
}

// LogCommand logs the outcome of a redis command issued on behalf of a bit vector.
func (l *Logger) LogCommand(ctx context.Context, op string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "redis command failed", "op", op, "error", err)
		return
	}
	l.DebugContext(ctx, "redis command completed", "op", op)
}

// LogRetry logs an optimistic transaction that has to be retried.
func (l *Logger) LogRetry(ctx context.Context, op string, attempt int) {
	l.DebugContext(ctx, "redis transaction retry", "op", op, "attempt", attempt)
}
