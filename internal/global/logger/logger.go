// Package logger is the process-wide logger of the contest server.
package logger

import "gitlab.com/stark-bootcamp.net/internal/adapter/logging"

var Logger = logging.NewZapLogger()

// Init swaps the process logger for one at level. Call it once, before
// anything captures Logger.
func Init(level string) *logging.ZapLogger {
	Logger = logging.NewZapLoggerWithLevel(level)
	return Logger
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
