package logger_test

import (
	"testing"

	"kanban/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInit_Level(t *testing.T) {
	prev := logger.Logger
	t.Cleanup(func() { logger.Logger = prev })

	require.NoError(t, logger.Init(false, "warn"))
	assert.False(t, logger.Logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Logger.Core().Enabled(zapcore.WarnLevel))

	require.NoError(t, logger.Init(true, ""))
	assert.True(t, logger.Logger.Core().Enabled(zapcore.DebugLevel), "development preset logs debug")

	assert.Error(t, logger.Init(false, "loud"))
}
