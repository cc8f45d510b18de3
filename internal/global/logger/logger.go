package logger

import (
	"gitlab.com/clawgames.net/internal/adapter/logging"
	"gitlab.com/clawgames.net/internal/core/ports/primary"
)

var Logger primary.Logger = logging.NewZapLogger()

// Set replaces the process-wide logger once configuration is loaded
func Set(l primary.Logger) {
	Logger = l
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
