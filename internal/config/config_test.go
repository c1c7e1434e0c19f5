package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(Overrides{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Search.Enabled)
	assert.True(t, strings.HasSuffix(cfg.Data.Path, ".booktrack"))
	assert.True(t, filepath.IsAbs(cfg.Data.Path))
}

func TestLoadConfigOverridesBeatEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOOKTRACK_LOG_LEVEL", "error")
	t.Setenv("BOOKTRACK_ENV", "production")

	cfg, err := LoadConfig(Overrides{
		LogLevel: "debug",
		EnvFile:  filepath.Join(t.TempDir(), "missing.env"),
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level, "CLI override wins over env")
	assert.Equal(t, "production", cfg.App.Environment, "env used when no override")
}

func TestLoadConfigEnvFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "# comment line\nBOOKTRACK_LOG_LEVEL=warn\nBOOKTRACK_DATA_PATH=\"" + filepath.Join(dir, "data") + "\"\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := LoadConfig(Overrides{EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.Data.Path)
}

func TestLoadConfigEnvBeatsEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOOKTRACK_LOG_LEVEL", "error")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BOOKTRACK_LOG_LEVEL=debug\n"), 0o600))

	cfg, err := LoadConfig(Overrides{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logger.Level)
}

func TestLoadConfigInvalidLevel(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(Overrides{
		LogLevel: "verbose",
		EnvFile:  filepath.Join(t.TempDir(), "missing.env"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLoadConfigInvalidEnvironment(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(Overrides{
		Environment: "staging",
		EnvFile:     filepath.Join(t.TempDir(), "missing.env"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment")
}

func TestExpandDataPathTilde(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(Overrides{
		DataPath: "~/books",
		EnvFile:  filepath.Join(t.TempDir(), "missing.env"),
	})
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "books"), cfg.Data.Path)
}

func TestExpandDataPathRelative(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(Overrides{
		DataPath: "some/relative/dir",
		EnvFile:  filepath.Join(t.TempDir(), "missing.env"),
	})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Data.Path))
}

func TestLoadEnvFileBadFormat(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("NOT A VALID LINE\n"), 0o600))

	err := loadEnvFile(envFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BOOKTRACK_ENV", "BOOKTRACK_LOG_LEVEL", "BOOKTRACK_DATA_PATH", "BOOKTRACK_SEARCH_ENABLED"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
