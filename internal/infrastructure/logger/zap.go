package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"quiz-solver/internal/application/port/output"
)

var _ output.LoggerPort = (*ZapLogger)(nil)

// ZapLogger adapts a zap sugared logger to the LoggerPort key-value API.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

func New(level string) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		lv, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lv)
	}

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &ZapLogger{sugar: base.Sugar()}, nil
}

// NewNop discards everything. Handy in tests.
func NewNop() *ZapLogger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *ZapLogger) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *ZapLogger) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *ZapLogger) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *ZapLogger) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *ZapLogger) WithField(key string, value any) output.LoggerPort {
	return &ZapLogger{sugar: l.sugar.With(key, value)}
}

func (l *ZapLogger) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &ZapLogger{sugar: l.sugar.With(args...)}
}

func (l *ZapLogger) Close() error {
	// Sync on stderr fails on some platforms; flushing is best effort.
	_ = l.sugar.Sync()
	return nil
}
