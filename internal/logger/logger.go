package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init настраивает глобальный zap-логгер по окружению.
func Init(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)

	switch environment {
	case "production":
		logger, err = zap.NewProduction()
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to build logger -> %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
