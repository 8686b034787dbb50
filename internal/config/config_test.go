package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uptimeping.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBuild_Defaults(t *testing.T) {
	f := Default()
	f.Target = "https://example.com/ok"

	cfg, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/ok", cfg.Target)
	assert.Equal(t, time.Duration(0), cfg.Duration)
	assert.Equal(t, 5*time.Second, cfg.Frequency)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, LogFileName, filepath.Base(cfg.Log.Path))
	assert.True(t, filepath.IsAbs(cfg.Log.Path))
}

func TestBuild_CollectsEveryProblem(t *testing.T) {
	f := File{Target: "", Duration: -1, Frequency: 0, Timeout: -3}

	_, err := f.Build()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
	assert.Contains(t, err.Error(), "target is required")
	assert.Contains(t, err.Error(), "duration must be >= 0")
	assert.Contains(t, err.Error(), "frequency must be > 0")
	assert.Contains(t, err.Error(), "timeout must be > 0")
}

func TestBuild_RejectsBadTargets(t *testing.T) {
	for _, target := range []string{"example.com", "ftp://example.com/file", "http://", "not a url"} {
		f := Default()
		f.Target = target
		_, err := f.Build()
		assert.Error(t, err, "target %q should be rejected", target)
	}
}

func TestLoad_FileThenBuild(t *testing.T) {
	path := writeFile(t, `
target = "http://localhost:8080/health"
duration = 10
frequency = 2
timeout = 1
verbose = true

[log]
path = "/tmp/uptimeping/ping.log"
max_size_mb = 10
max_backups = 3
`)

	f := Default()
	require.NoError(t, Load(path, &f))

	cfg, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Duration)
	assert.Equal(t, 2*time.Second, cfg.Frequency)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "/tmp/uptimeping/ping.log", cfg.Log.Path)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
}

func TestLoad_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeFile(t, `target = "https://example.com"`)

	f := Default()
	require.NoError(t, Load(path, &f))
	assert.Equal(t, DefaultFrequency, f.Frequency)
	assert.Equal(t, DefaultTimeout, f.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	f := Default()
	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.toml"), &f))

	bad := writeFile(t, `frequency = "often"`)
	assert.Error(t, Load(bad, &f))

	unknown := writeFile(t, "target = \"https://example.com\"\nretries = 3\n")
	err := Load(unknown, &f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retries")
}

func TestWarnings(t *testing.T) {
	cfg := Config{
		Target:    "http://example.com",
		Duration:  2 * time.Second,
		Frequency: 5 * time.Second,
		Timeout:   5 * time.Second,
	}
	assert.Len(t, Warnings(cfg), 3)

	cfg = Config{Target: "https://example.com", Frequency: 5 * time.Second, Timeout: time.Second}
	assert.Empty(t, Warnings(cfg))
}
