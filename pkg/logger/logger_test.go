package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigBuild(t *testing.T) {
	cfg := ProductionConfig()
	cfg.Level = "warn"
	cfg.Output = []string{"stderr"}

	logger, err := cfg.Build()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestConfigBuild_InvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := DevelopmentConfig()
	cfg.Level = "loud"
	cfg.Fields = map[string]interface{}{"service": "splice"}

	logger, err := cfg.Build()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestContextRoundTrip(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	ctx = WithFields(ctx, zap.String("session", "abc"))

	FromContext(ctx).Info("hello")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "hello", entry.Message)
	assert.Equal(t, "abc", entry.ContextMap()["session"])
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info("dropped")
	})
}

func TestNew_JSONFormatDisablesColor(t *testing.T) {
	logger, err := New("splice", "development", "warn", "json")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}
