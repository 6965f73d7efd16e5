// Package log provides a thin component-scoped wrapper around log/slog.
package log

import (
	"context"
	"log/slog"
	"os"
)

// Logger tags every record with the component that emitted it.
type Logger struct {
	logger    *slog.Logger
	component string
}

// Config holds logger configuration.
type Config struct {
	// Level applies to the default handler only; a supplied Handler
	// carries its own level.
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

// New creates a logger with the given configuration. When no handler is
// supplied a text handler on stdout is used.
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: config.Level,
		})
	}

	return &Logger{
		logger:    slog.New(handler),
		component: config.Component,
	}
}

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, append([]any{"component", l.component}, args...)...)
}
