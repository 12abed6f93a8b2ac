package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes how the process logger is built
type Config struct {
	Level  string   `yaml:"level"`
	Format string   `yaml:"format"` // json or console
	Color  bool     `yaml:"color"`
	Output []string `yaml:"output"`
	Errors []string `yaml:"errors"`

	// Fields are attached to every entry
	Fields map[string]interface{} `yaml:"fields"`
}

// ProductionConfig logs JSON at info level to stdout
func ProductionConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "json",
		Output: []string{"stdout"},
		Errors: []string{"stderr"},
	}
}

// DevelopmentConfig logs colored console lines at debug level to stderr,
// keeping stdout free for command output
func DevelopmentConfig() *Config {
	return &Config{
		Level:  "debug",
		Format: "console",
		Color:  true,
		Output: []string{"stderr"},
		Errors: []string{"stderr"},
	}
}

func (c *Config) encoderConfig() zapcore.EncoderConfig {
	if c.Format == "console" {
		enc := zap.NewDevelopmentEncoderConfig()
		if c.Color {
			enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		return enc
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return enc
}

// Build creates the zap logger. An unknown level falls back to info.
func (c *Config) Build() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	format := c.Format
	if format == "" {
		format = "json"
	}
	output := c.Output
	if len(output) == 0 {
		output = []string{"stderr"}
	}
	errorOutput := c.Errors
	if len(errorOutput) == 0 {
		errorOutput = []string{"stderr"}
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       format == "console",
		DisableStacktrace: format == "console",
		Encoding:          format,
		EncoderConfig:     c.encoderConfig(),
		OutputPaths:       output,
		ErrorOutputPaths:  errorOutput,
		InitialFields:     c.Fields,
	}
	if !zapConfig.Development {
		zapConfig.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	}
	return zapConfig.Build()
}
