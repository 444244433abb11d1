package log

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

func init() {
	logger = newLogger(os.Getenv("DEBUG") != "")
}

func newLogger(debug bool) *zap.Logger {
	encConfig := zap.NewDevelopmentEncoderConfig()
	encConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encConfig.EncodeCaller = nil
	encConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.StampMicro))
	}

	stdout, closeOut, err := zap.Open("stdout")
	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	stderr, _, err := zap.Open("stderr")
	if err != nil {
		closeOut()
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encConfig), stdout, level)
	return zap.New(core, zap.ErrorOutput(stderr))
}

// S returns a *[zap.SugaredLogger].
func S() *zap.SugaredLogger {
	return logger.Sugar()
}

// L returns a *[zap.Logger].
func L() *zap.Logger {
	return logger
}

// Named returns a sugared logger scoped to a component, e.g. "server".
func Named(name string) *zap.SugaredLogger {
	return logger.Sugar().Named(name)
}

// Sync flushes buffered log entries. Errors from syncing stdout on
// terminals are not interesting to callers and are dropped.
func Sync() {
	_ = logger.Sync()
}
