// Package logging provides structured logging for the go-collide engine.
// It wraps Go's standard slog package so every subsystem logs the same
// way, and threads the current simulation tick through context so log
// lines from one tick can be correlated across the broad phase, narrow
// phase and resolver.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

// Logger wraps slog.Logger with tick-aware convenience methods
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with JSON output and configurable level.
// The log level can be controlled via the COLLIDE_LOG_LEVEL environment
// variable. Valid levels: DEBUG, INFO, WARN, ERROR. Defaults to INFO.
func NewLogger() *Logger {
	level := getLogLevelFromEnv()
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: sanitizeAttributes,
	})
	return &Logger{slog.New(handler)}
}

// LogWithContext logs a message, attaching the simulation tick when one
// is present in the context.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if tick, ok := TickFromContext(ctx); ok {
		args = append(args, "tick", tick)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

// tickKey is the context key for the current simulation tick
type tickKey struct{}

// WithTick tags the context with the current simulation tick. The
// orchestrator sets it once at the top of its tick loop; every engine
// log line within that tick then carries the tick number.
func WithTick(ctx context.Context, tick uint64) context.Context {
	return context.WithValue(ctx, tickKey{}, tick)
}

// TickFromContext extracts the simulation tick from the context.
// The second return value is false when no tick has been set.
func TickFromContext(ctx context.Context) (uint64, bool) {
	tick, ok := ctx.Value(tickKey{}).(uint64)
	return tick, ok
}

// getLogLevelFromEnv determines the log level from environment variables.
func getLogLevelFromEnv() slog.Level {
	levelStr := strings.ToUpper(os.Getenv("COLLIDE_LOG_LEVEL"))
	switch levelStr {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// sanitizeAttributes renders non-finite float values as strings. The
// JSON handler cannot encode NaN or Inf, and positions or velocities
// gone non-finite are exactly the values worth seeing in the log.
func sanitizeAttributes(groups []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindFloat64 {
		if v := a.Value.Float64(); math.IsNaN(v) || math.IsInf(v, 0) {
			return slog.Attr{
				Key:   a.Key,
				Value: slog.StringValue(strconv.FormatFloat(v, 'g', -1, 64)),
			}
		}
	}
	return a
}

// WrapError wraps an error with additional context information.
// This preserves the original error while adding descriptive context.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
