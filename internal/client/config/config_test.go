package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "xyz", cfg.Team.TestName)
	assert.Equal(t, 300, cfg.Timers.Durations["stage1"])
	assert.Equal(t, 300, cfg.Timers.Durations["stage5"])
	assert.Equal(t, 30, cfg.Timers.WarningAt)
	assert.Equal(t, 10, cfg.Timers.CriticalAt)
	assert.Equal(t, int64(10<<20), cfg.MaxFileBytes())
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.RedirectDelay)
	assert.Equal(t, 128000, cfg.Judge.MemoryLimitKB)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
api:
  baseURL: https://contest.example
  timeout: 5s
team:
  testName: tester
timers:
  durations:
    stage2: 90
uploads:
  maxFileMB: 2
judge:
  authToken: secret
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://contest.example", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "tester", cfg.Team.TestName)
	assert.Equal(t, 90, cfg.Timers.Durations["stage2"])
	assert.Equal(t, 300, cfg.Timers.Durations["stage3"])
	assert.Equal(t, int64(2<<20), cfg.MaxFileBytes())
	assert.Equal(t, "secret", cfg.Judge.AuthToken)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
