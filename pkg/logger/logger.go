package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide logger. Development mode uses the console
// encoder with full stack traces; production logs JSON at info level.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
