package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

// Init configures the process-wide logger. Production gets JSON at info
// level, everything else gets console output at debug level.
func Init(environment string) {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	sugar = l.Sugar()
}

func log() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

func Debug(msg string, keysAndValues ...interface{}) {
	log().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	log().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	log().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	log().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	log().Fatalw(msg, keysAndValues...)
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
