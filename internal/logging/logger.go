package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a production ready structured logger.
func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	return cfg.Build()
}

// WithOperation enriches the logger with operation and attempt identifiers.
func WithOperation(logger *zap.Logger, operation, attemptID string) *zap.Logger {
	fields := []zap.Field{zap.String("operation", operation)}
	if attemptID != "" {
		fields = append(fields, zap.String("attempt_id", attemptID))
	}
	return logger.With(fields...)
}
