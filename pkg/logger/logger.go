package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger for a service. Development output is used
// unless environment is "production"; logFormat "json" forces JSON encoding.
func New(serviceName, environment, logLevel, logFormat string) (*zap.Logger, error) {
	cfg := ProductionConfig()
	if environment != "production" {
		cfg = DevelopmentConfig()
	}
	if logLevel != "" {
		cfg.Level = logLevel
	}
	switch logFormat {
	case "json":
		cfg.Format = "json"
		cfg.Color = false
	case "console", "text":
		cfg.Format = "console"
	}

	cfg.Fields = map[string]interface{}{
		"service": serviceName,
		"env":     environment,
	}
	if hostname, err := os.Hostname(); err == nil {
		cfg.Fields["hostname"] = hostname
	}
	return cfg.Build()
}
