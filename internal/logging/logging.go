package logging

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger. LOG_MODE=development switches to the
// human-readable encoder; production JSON otherwise.
func New() (*zap.Logger, error) {
	if os.Getenv("LOG_MODE") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Must panics when the logger cannot be constructed. Used only in main.
func Must() *zap.Logger {
	log, err := New()
	if err != nil {
		panic(err)
	}
	return log
}
