package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(LoggingConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = NewLogger(LoggingConfig{Level: "loud", Format: "console"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel), "unknown levels fall back to info")
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))

	log, err = NewLogger(Default().Logging)
	require.NoError(t, err)
	assert.NotNil(t, log)
}
