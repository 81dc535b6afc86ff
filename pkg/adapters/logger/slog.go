// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-webcrypto.
//
// go-webcrypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jeremyhahn/go-webcrypto/pkg/correlation"
)

// Output formats understood by NewSlogAdapter.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// SlogAdapter wraps a slog.Logger to implement the Logger interface
type SlogAdapter struct {
	logger *slog.Logger
}

// SlogConfig configures the slog adapter
type SlogConfig struct {
	// Logger is the underlying slog logger. If set, the remaining options
	// are ignored.
	Logger *slog.Logger

	// Level is the minimum log level to output
	Level Level

	// Format selects the handler: "text" (default) or "json".
	Format string

	// Output defaults to os.Stderr.
	Output io.Writer

	// AddSource adds source code position to log records
	AddSource bool
}

// NewSlogAdapter creates a new slog adapter
func NewSlogAdapter(config *SlogConfig) *SlogAdapter {
	if config == nil {
		config = &SlogConfig{Level: LevelInfo}
	}
	if config.Logger != nil {
		return &SlogAdapter{logger: config.Logger}
	}

	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     levelToSlogLevel(config.Level),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if strings.EqualFold(config.Format, FormatJSON) {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return &SlogAdapter{logger: slog.New(handler)}
}

// NewNop returns a logger that discards every record.
func NewNop() *SlogAdapter {
	return &SlogAdapter{logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

// Debug logs a debug message
func (l *SlogAdapter) Debug(msg string, fields ...Field) {
	l.log(context.Background(), slog.LevelDebug, msg, fields)
}

// Info logs an informational message
func (l *SlogAdapter) Info(msg string, fields ...Field) {
	l.log(context.Background(), slog.LevelInfo, msg, fields)
}

// Warn logs a warning message
func (l *SlogAdapter) Warn(msg string, fields ...Field) {
	l.log(context.Background(), slog.LevelWarn, msg, fields)
}

// Error logs an error message
func (l *SlogAdapter) Error(msg string, fields ...Field) {
	l.log(context.Background(), slog.LevelError, msg, fields)
}

// DebugContext logs a debug message with correlation ID from context
func (l *SlogAdapter) DebugContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelDebug, msg, withCorrelationID(ctx, fields))
}

// InfoContext logs an informational message with correlation ID from context
func (l *SlogAdapter) InfoContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelInfo, msg, withCorrelationID(ctx, fields))
}

// WarnContext logs a warning message with correlation ID from context
func (l *SlogAdapter) WarnContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelWarn, msg, withCorrelationID(ctx, fields))
}

// ErrorContext logs an error message with correlation ID from context
func (l *SlogAdapter) ErrorContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, withCorrelationID(ctx, fields))
}

// With creates a child logger with the given fields
func (l *SlogAdapter) With(fields ...Field) Logger {
	return &SlogAdapter{logger: l.logger.With(toArgs(fields)...)}
}

// Slog exposes the underlying logger for libraries that want *slog.Logger.
func (l *SlogAdapter) Slog() *slog.Logger {
	return l.logger
}

func (l *SlogAdapter) log(ctx context.Context, level slog.Level, msg string, fields []Field) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.logger.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, fieldToAttr(f))
	}
	l.logger.LogAttrs(ctx, level, msg, attrs...)
}

func withCorrelationID(ctx context.Context, fields []Field) []Field {
	if id := correlation.GetCorrelationID(ctx); id != "" {
		return append(fields, String("correlation_id", id))
	}
	return fields
}

// fieldToAttr converts a Field to slog.Attr
func fieldToAttr(field Field) slog.Attr {
	switch v := field.Value.(type) {
	case string:
		return slog.String(field.Key, v)
	case int:
		return slog.Int(field.Key, v)
	case float64:
		return slog.Float64(field.Key, v)
	case bool:
		return slog.Bool(field.Key, v)
	default:
		return slog.Any(field.Key, v)
	}
}

func toArgs(fields []Field) []any {
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = fieldToAttr(f)
	}
	return args
}

// levelToSlogLevel converts our Level to slog.Level
func levelToSlogLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
