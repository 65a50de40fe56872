package observability

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxLoggerFieldCapacity = 5

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json or console
}

// Loggers are not stored in context; request fields are attached by FromContext.
//
//nolint:gochecknoglobals // Singleton logger is a standard pattern
var (
	globalLogger *zap.Logger
	loggerMu     sync.RWMutex
)

// InitLogger builds the base logger from cfg (called once at startup).
func InitLogger(cfg *LogConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg != nil {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Level, err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)

		switch cfg.Format {
		case "", "json":
		case "console":
			zapCfg.Encoding = "console"
			zapCfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		default:
			return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or console", cfg.Format)
		}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	SetLogger(logger)
	return logger, nil
}

// SetLogger replaces the base logger.
func SetLogger(logger *zap.Logger) {
	loggerMu.Lock()
	globalLogger = logger
	loggerMu.Unlock()
}

func getBaseLogger() *zap.Logger {
	loggerMu.RLock()
	logger := globalLogger
	loggerMu.RUnlock()

	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// FromContext returns the base logger with request fields taken from ctx.
func FromContext(ctx context.Context) *zap.Logger {
	logger := getBaseLogger()

	fields := make([]zap.Field, 0, maxLoggerFieldCapacity)

	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}

	if spanID := GetSpanID(ctx); spanID != "" {
		fields = append(fields, zap.String("span_id", spanID))
	}

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	if category := GetCategory(ctx); category != "" {
		fields = append(fields, zap.String("category", category))
	}

	if code := GetCode(ctx); code != "" {
		fields = append(fields, zap.String("code", code))
	}

	return logger.With(fields...)
}
