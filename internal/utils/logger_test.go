package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerHonorsLevel(t *testing.T) {
	log, err := NewLogger(false, "warn")
	require.NoError(t, err)

	core := log.Desugar().Core()
	assert.True(t, core.Enabled(zapcore.WarnLevel))
	assert.False(t, core.Enabled(zapcore.InfoLevel), "configured level must silence lower levels")
}

func TestNewLoggerDefaultsWithoutLevel(t *testing.T) {
	log, err := NewLogger(true, "")
	require.NoError(t, err)
	assert.True(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := NewLogger(false, "shouting")
	require.Error(t, err)
}
