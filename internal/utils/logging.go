// internal/utils/logging.go
package utils

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultLogFileName = "store-creator.log"
	LogFileMode        = 0644
)

// Logger is the process-wide logger. It is a no-op logger until Init is called
// so packages can log safely from tests.
var Logger = zap.NewNop()

// Init configures zap to write to both console and a log file.
// LOG_FILE overrides the file name and LOG_LEVEL the level (default: info).
// This should be called once at application startup.
func Init() error {
	fileName := os.Getenv("LOG_FILE")
	if fileName == "" {
		fileName = DefaultLogFileName
	}
	logFile, err := os.OpenFile(fileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, LogFileMode)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", fileName, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)

	level := ParseLevel(os.Getenv("LOG_LEVEL"))

	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level)
	fileCore := zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), level)

	Logger = zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	Logger.Info("logging initialized",
		zap.String("log_level", level.String()),
		zap.String("log_file", fileName))

	return nil
}

// ParseLevel maps a LOG_LEVEL value to a zap level, falling back to info.
func ParseLevel(value string) zapcore.Level {
	if value == "" {
		return zapcore.InfoLevel
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		fmt.Printf("unknown LOG_LEVEL '%s', defaulting to 'info'\n", value)
		return zapcore.InfoLevel
	}
	return level
}

// Sync flushes any buffered log entries.
func Sync() error {
	if Logger != nil {
		return Logger.Sync()
	}
	return nil
}

// WithComponent returns a logger pre-bound with a `component` field so callers
// don't have to repeat the same field across messages in a component.
func WithComponent(component string) *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger.With(zap.String(FieldComponent, component))
}
