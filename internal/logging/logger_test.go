package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/vidcompress/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()

	var out, errOut bytes.Buffer
	l.SetOutput(&out, &errOut)
	l.Info("test message")
	l.Error("broken")

	assert.Contains(t, out.String(), "[INFO] test message")
	assert.NotContains(t, out.String(), "broken")
	assert.Contains(t, errOut.String(), "[ERROR] broken")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "vidcompress.log")
	l, err := NewLogger(&cfg)
	require.NoError(t, err)

	var sink bytes.Buffer
	l.SetOutput(&sink, &sink)
	l.Info("to file")
	l.Success("encoded a.mp4")
	require.NoError(t, l.Close())

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[INFO]")
	assert.Contains(t, string(b), "to file")
	assert.Contains(t, string(b), "outcome=success")
}

func TestDebug_GatedByVerbose(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	l.SetOutput(&out, &out)
	l.Debug(false, "hidden")
	l.Debug(true, "shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[DEBUG] shown")
}

func TestColoredOutput(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorAlways
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		c := config.DefaultConfig()
		c.ColorMode = config.ColorNever
		_, _ = NewLogger(&c)
	})

	var out bytes.Buffer
	l.SetOutput(&out, &out)
	l.Warn("careful")
	assert.Contains(t, out.String(), "\033[1;93m[WARN]\033[0m careful")
}
