package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	CorrelatedIDKey     contextKey = "correlation_id"
	LoggerKeyForContext contextKey = "logger"
)

type Logger struct {
	*slog.Logger
}

// NewLoggerWithJSONOutput writes JSON to stdout at the level named by LOG_LEVEL (default info).
func NewLoggerWithJSONOutput() *Logger {
	return NewLogger(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")))
}

func NewLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) WithCorrelationID(ctx context.Context) *Logger {
	return &Logger{
		Logger: l.Logger.With(string(CorrelatedIDKey), GetOrGenerateCorrelationID(ctx)),
	}
}

func GetOrGenerateCorrelationID(ctx context.Context) string {
	if ctx != nil {
		if id, ok := ctx.Value(CorrelatedIDKey).(string); ok && id != "" {
			return id
		}
	}

	return GenerateCorrelationID()
}

func GenerateCorrelationID() string {
	return uuid.New().String()
}

// GetLoggerInstanceFromContext prefers the request logger injected by the router and
// falls back to fallbackLogger tagged with the context's correlation id.
func GetLoggerInstanceFromContext(ctx context.Context, fallbackLogger *Logger) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerKeyForContext).(*Logger); ok {
			return l
		}
	}

	if fallbackLogger == nil {
		fallbackLogger = NewLoggerWithJSONOutput()
	}

	if ctx == nil {
		return fallbackLogger
	}

	return fallbackLogger.WithCorrelationID(ctx)
}
