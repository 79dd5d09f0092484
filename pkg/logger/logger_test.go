package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.log")

	cfg := &Config{
		Level:      "DEBUG",
		Filename:   filename,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
		Compress:   false,
	}

	err := InitLogger(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, Log)

	Named("test").Info("Test log message")
	Sync()

	_, err = os.Stat(filename)
	assert.NoError(t, err)
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:    "INVALID",
		Filename: filepath.Join(t.TempDir(), "test_invalid.log"),
	}

	err := InitLogger(cfg)
	assert.Error(t, err)
}
