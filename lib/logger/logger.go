// Package logger provides named loggers for all rKV packages.
// It wraps a single zap logger so that every component logs through
// the same core with a shared, runtime-adjustable log level.
package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// --------------------------------------------------------------------------
// Shared Logger State
// --------------------------------------------------------------------------

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  *zap.Logger
	once  sync.Once
)

// build creates the shared base logger. Called lazily on first Get.
func build() {
	conf := zap.NewProductionConfig()
	conf.Level = level
	conf.DisableStacktrace = true

	l, err := conf.Build()
	if err != nil {
		// A default production config never fails to build
		panic(fmt.Sprintf("logger: %v", err))
	}
	base = l
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// Get returns a named logger for the given package or component.
// All loggers returned by Get share the same core and log level.
func Get(name string) *zap.Logger {
	once.Do(build)
	return base.Named(name)
}

// SetLevel changes the log level of all loggers returned by Get.
// Accepted values are debug, info, warn and error.
func SetLevel(s string) error {
	l, err := parseLevel(s)
	if err != nil {
		return err
	}
	level.SetLevel(l)
	return nil
}

// parseLevel converts a string level to a zapcore.Level
func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warning", "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", s)
	}
}
