package observability

import (
	"context"
	"fmt"

	"github.com/upb/api-scaffold/config"
	"github.com/upb/api-scaffold/internal/shared"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging with context awareness.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
}

// Field represents a structured log field.
type Field = zap.Field

// NewLogger builds the process logger from the observability configuration.
// LogFormat "console" selects a human readable development encoder; anything
// else produces JSON.
func NewLogger(cfg config.ObservabilityConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zcfg zap.Config
	if cfg.LogFormat == "console" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "timestamp"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// ContextLogger adapts a *zap.Logger to Logger.
type ContextLogger struct {
	base *zap.Logger
}

// NewContextLogger wraps base. A nil base logs nothing.
func NewContextLogger(base *zap.Logger) *ContextLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &ContextLogger{base: base}
}

func (l *ContextLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.base.Debug(msg, l.with(ctx, fields)...)
}

func (l *ContextLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.base.Info(msg, l.with(ctx, fields)...)
}

func (l *ContextLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.base.Warn(msg, l.with(ctx, fields)...)
}

func (l *ContextLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.base.Error(msg, l.with(ctx, fields)...)
}

func (l *ContextLogger) with(ctx context.Context, fields []Field) []Field {
	if ctx == nil {
		return fields
	}
	id := shared.RequestID(ctx)
	if id == "" {
		return fields
	}
	return append([]Field{zap.String("request_id", id)}, fields...)
}
