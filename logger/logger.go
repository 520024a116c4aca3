package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalMu     sync.RWMutex
	globalLogger Logger
)

// logger wraps a zap.Logger behind the Logger interface.
type logger struct {
	zap *zap.Logger
}

// NewLogger builds a logger from configuration. Production environments and
// the "json" format get zap's JSON encoder; everything else gets a colored
// console encoder suited to a terminal.
func NewLogger(config LoggingConfig) Logger {
	level := parseLevel(config.Level)

	if config.Environment == "production" || config.Format == "json" {
		return newFromConfig(zap.NewProductionConfig(), level)
	}
	return newFromConfig(developmentConfig(), level)
}

// NewDevelopmentLogger returns a console logger at debug level.
func NewDevelopmentLogger() Logger {
	return newFromConfig(developmentConfig(), zapcore.DebugLevel)
}

// NewProductionLogger returns a JSON logger at info level.
func NewProductionLogger() Logger {
	return newFromConfig(zap.NewProductionConfig(), zapcore.InfoLevel)
}

// NewNoopLogger returns a logger that discards everything. Handy as the
// default when a component is handed a nil Logger.
func NewNoopLogger() Logger {
	return &logger{zap: zap.NewNop()}
}

func newFromConfig(cfg zap.Config, level zapcore.Level) Logger {
	cfg.Level = zap.NewAtomicLevelAt(level)
	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		zapLogger = zap.NewNop()
	}
	return &logger{zap: zapLogger}
}

func developmentConfig() zap.Config {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// GetGlobalLogger returns the process-wide logger, creating a development
// logger on first use if none was set.
func GetGlobalLogger() Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = NewDevelopmentLogger()
	}
	return globalLogger
}

// SetGlobalLogger replaces the process-wide logger. Nil is ignored.
func SetGlobalLogger(l Logger) {
	if l == nil {
		return
	}
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

func (l *logger) Debug(msg string, fields ...Field) {
	l.zap.Debug(msg, fields...)
}

func (l *logger) Info(msg string, fields ...Field) {
	l.zap.Info(msg, fields...)
}

func (l *logger) Warn(msg string, fields ...Field) {
	l.zap.Warn(msg, fields...)
}

func (l *logger) Error(msg string, fields ...Field) {
	l.zap.Error(msg, fields...)
}

func (l *logger) Fatal(msg string, fields ...Field) {
	l.zap.Fatal(msg, fields...)
}

func (l *logger) With(fields ...Field) Logger {
	return &logger{zap: l.zap.With(fields...)}
}

func (l *logger) Named(name string) Logger {
	return &logger{zap: l.zap.Named(name)}
}

func (l *logger) Sync() error {
	return l.zap.Sync()
}
