package logger_test

import (
	"testing"

	"github.com/ledgerlane/crm-api/internal/config"
	"github.com/ledgerlane/crm-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Level(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "warn", Format: "console"},
		&config.AppConfig{Name: "crm", Environment: "development"},
	)
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "loud", Format: "json"},
		&config.AppConfig{Name: "crm", Environment: "production"},
	)
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}
