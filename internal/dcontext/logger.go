package dcontext

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	defaultLogger   = logrus.StandardLogger().WithField("go.version", runtime.Version())
	defaultLoggerMu sync.RWMutex
)

// Logger is the leveled logger handed out by GetLogger. *logrus.Entry
// implements it.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)

	Info(args ...any)
	Infof(format string, args ...any)

	Warn(args ...any)
	Warnf(format string, args ...any)

	Error(args ...any)
	Errorf(format string, args ...any)
}

type loggerKey struct{}

// WithLogger returns a context carrying logger. Loggers that are not
// *logrus.Entry values are ignored by GetLogger.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the logger of ctx, or the default logger tagged with
// the process instance id. Each of keys is looked up on ctx and, when set,
// added as a field named fmt.Sprint(key).
func GetLogger(ctx context.Context, keys ...any) Logger {
	return entry(ctx, keys...)
}

// GetLoggerWithField is GetLogger with one extra field. The context is not
// modified.
func GetLoggerWithField(ctx context.Context, key string, value any) Logger {
	return entry(ctx).WithField(key, value)
}

// GetLoggerWithFields is GetLogger with extra fields. The context is not
// modified.
func GetLoggerWithFields(ctx context.Context, fields map[string]any) Logger {
	return entry(ctx).WithFields(logrus.Fields(fields))
}

// SetDefaultLogger replaces the logger used for contexts that carry none.
func SetDefaultLogger(logger Logger) {
	e, ok := logger.(*logrus.Entry)
	if !ok {
		return
	}

	defaultLoggerMu.Lock()
	defaultLogger = e
	defaultLoggerMu.Unlock()
}

func entry(ctx context.Context, keys ...any) *logrus.Entry {
	logger, _ := ctx.Value(loggerKey{}).(*logrus.Entry)
	if logger == nil {
		defaultLoggerMu.RLock()
		logger = defaultLogger
		defaultLoggerMu.RUnlock()

		if id := ctx.Value(instanceIDKey{}); id != nil {
			logger = logger.WithField(instanceIDKey{}.String(), id)
		}
	}

	if len(keys) == 0 {
		return logger
	}
	fields := make(logrus.Fields, len(keys))
	for _, key := range keys {
		if v := ctx.Value(key); v != nil {
			fields[fmt.Sprint(key)] = v
		}
	}
	return logger.WithFields(fields)
}
