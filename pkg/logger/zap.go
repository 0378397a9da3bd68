package logger

import (
	"go.uber.org/zap"
)

// ZapLogger реализует Logger поверх zap.SugaredLogger.
type ZapLogger struct {
	log *zap.SugaredLogger
}

// NewZapLogger создаёт production-логгер zap.
func NewZapLogger() (*ZapLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	return &ZapLogger{log: l.Sugar()}, nil
}

// NewZapLoggerWithLevel создаёт production-логгер zap с уровнем level (debug, info, warn, error).
func NewZapLoggerWithLevel(level string) (*ZapLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &ZapLogger{log: l.Sugar()}, nil
}

func (l *ZapLogger) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *ZapLogger) Infof(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *ZapLogger) Warnf(format string, args ...any) {
	l.log.Warnf(format, args...)
}

func (l *ZapLogger) Errorf(err error, format string, args ...any) {
	l.log.With(zap.Error(err)).Errorf(format, args...)
}

// Sync сбрасывает буферы zap.
func (l *ZapLogger) Sync() error {
	return l.log.Sync()
}
