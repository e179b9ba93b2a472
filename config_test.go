package peopledatalabs

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "v5", cfg.Version)
	assert.Empty(t, cfg.APIKey)
	assert.False(t, cfg.Sandbox)
	assert.Zero(t, cfg.Timeout)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{"valid", Config{APIKey: "k", Version: "v5"}, ""},
		{"missing key", Config{Version: "v5"}, "api_key"},
		{"bad version", Config{APIKey: "k", Version: "v10"}, "version"},
		{"missing version", Config{APIKey: "k"}, "version"},
		{"bad base url", Config{APIKey: "k", Version: "v5", BaseURL: "not a url"}, "base_url"},
		{"bad log level", Config{APIKey: "k", Version: "v5", LogLevel: "verbose"}, "log_level"},
		{"negative timeout", Config{APIKey: "k", Version: "v5", Timeout: -time.Second}, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Contains(t, e.Details, tt.wantField)
		})
	}
}

func TestConfigResolvedBaseURL(t *testing.T) {
	assert.Equal(t, "https://api.peopledatalabs.com/v5", Config{Version: "v5"}.ResolvedBaseURL())
	assert.Equal(t, "https://sandbox.api.peopledatalabs.com/v4", Config{Version: "v4", Sandbox: true}.ResolvedBaseURL())
	assert.Equal(t, "http://localhost:9000/v5", Config{Version: "v5", Sandbox: true, BaseURL: "http://localhost:9000/v5/"}.ResolvedBaseURL())
}

func TestConfigSlogLevel(t *testing.T) {
	level, ok := Config{LogLevel: "warn"}.SlogLevel()
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)

	_, ok = Config{}.SlogLevel()
	assert.False(t, ok)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PDL_API_KEY", "env-key")
	t.Setenv("PDL_SANDBOX", "true")
	t.Setenv("PDL_TIMEOUT", "15s")
	t.Setenv("PDL_LOG_LEVEL", "debug")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.True(t, cfg.Sandbox)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "v5", cfg.Version)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pdl.yaml", `api_key: file-key
version: v4
base_url: http://localhost:8080/v4
timeout: 30s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "v4", cfg.Version)
	assert.Equal(t, "http://localhost:8080/v4", cfg.ResolvedBaseURL())
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pdl.yaml", "api_key: file-key\n")
	t.Setenv("PDL_API_KEY", "env-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestLoadConfig_DotenvDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "PDL_API_KEY=dotenv-key\nPDL_SANDBOX=true\nOTHER_TOOL_SETTING=ignored\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.APIKey)
	assert.True(t, cfg.Sandbox)
	assert.Equal(t, "https://sandbox.api.peopledatalabs.com/v5", cfg.ResolvedBaseURL())
}

func TestLoadConfig_EnvOverridesDotenv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prod.env", "PDL_API_KEY=dotenv-key\nPDL_VERSION=v4\n")
	t.Setenv("PDL_API_KEY", "env-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "v4", cfg.Version)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
