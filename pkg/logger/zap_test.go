package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZapLogger_Levels(t *testing.T) {
	logger, err := NewZapLogger(Config{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1)) // debug
	assert.True(t, logger.Core().Enabled(1))   // warn

	_, err = NewZapLogger(Config{Level: "verbose"})
	assert.Error(t, err)
}

func TestNewZapLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paybot.log")

	logger, err := NewZapLogger(Config{Level: "info", Output: "file", FilePath: path})
	require.NoError(t, err)
	logger.Info("webhook received")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "webhook received")

	_, err = NewZapLogger(Config{Output: "file"})
	assert.Error(t, err)
}

func TestDefaultZapLogger(t *testing.T) {
	assert.NotNil(t, DefaultZapLogger())
}
