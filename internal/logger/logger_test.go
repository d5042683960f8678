package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	l := NewWithConfig(Config{
		Level:      "DEBUG",
		Filename:   path,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	assert.Equal(t, "debug", l.Level())

	l.Info("saved %d gateways", 5)
	l.Sync()

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	l := New("INVALID")
	assert.Equal(t, "info", l.Level())
}

func TestNopDoesNotPanic(t *testing.T) {
	l := Nop().With("component", "test")
	assert.NotPanics(t, func() {
		l.Debug("x")
		l.Warn("y %s", "z")
		l.Error("e")
	})
}
