package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperr "mortarEditor/internal/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultConfigFileName)
	m := NewManager(path)

	require.NoError(t, m.Load())
	assert.Equal(t, DefaultSettings(), m.Settings())

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), DefaultLogFileName), m.GetLogPath())
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	content := "theme: dracula\nexport_dir: ~/exports\nrequest_timeout: 3s\nlog_level: debug\napi: 10.0.0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	m := NewManager(path)
	require.NoError(t, m.Load())

	s := m.Settings()
	assert.Equal(t, "dracula", s.Theme)
	assert.Equal(t, "~/exports", s.ExportDir)
	assert.Equal(t, 3*time.Second, s.RequestTimeout)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "10.0.0.5", s.API)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("theme: nord\n"), 0600))

	m := NewManager(path)
	require.NoError(t, m.Load())
	assert.Equal(t, "nord", m.Settings().Theme)
	assert.Equal(t, DefaultRequestTimeout, m.Settings().RequestTimeout)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	for name, content := range map[string]string{
		"bad yaml":      "theme: [unclosed\n",
		"bad log level": "log_level: verbose\n",
		"negative":      "request_timeout: -1s\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(content), 0600))

			err := NewManager(path).Load()
			assert.True(t, apperr.Is(err, apperr.ConfigError), "got %v", err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	m := NewManager(path)
	require.NoError(t, m.Load())

	m.SetTheme("solarized")
	require.NoError(t, m.Save())

	again := NewManager(path)
	require.NoError(t, again.Load())
	assert.Equal(t, "solarized", again.Settings().Theme)
}
