package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesFileAndConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	var console bytes.Buffer

	l, err := newWithConsole(Config{Level: "info", File: path}, &console)
	require.NoError(t, err)

	l.Info("order placed")
	l.Debug("hidden")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "order placed")
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, console.String(), "order placed")
}

func TestNew_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	require.NoError(t, os.WriteFile(path, []byte("previous line\n"), 0o644))

	l, err := New(Config{File: path, Console: "off"})
	require.NoError(t, err)
	l.Info("next line")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "previous line\n")
	assert.Contains(t, string(data), "next line")
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Encoding: "xml"})
	assert.Error(t, err)

	_, err = New(Config{Console: "printer"})
	assert.Error(t, err)
}
