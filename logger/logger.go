package logger

import (
	"os"

	"go.uber.org/zap"
)

const LogLevelEnvKey = "LOG_LEVEL"

func NewProductionLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	if value := os.Getenv(LogLevelEnvKey); value != "" {
		level, err := zap.ParseAtomicLevel(value)
		if err != nil {
			return nil, err
		}
		config.Level = level
	}
	config.InitialFields = map[string]interface{}{
		"service": "testledger",
	}
	return config.Build()
}

func Suggar(logger *zap.Logger) *zap.SugaredLogger {
	return logger.Sugar()
}
