package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, DefaultConfigDir)
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, DefaultConfigFile), []byte(content), 0600))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10, cfg.Catalog.DefaultLimit)
	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.Feed.BaseURL)
	assert.Equal(t, 700, cfg.Feed.Limit)
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, 2, cfg.Feed.Retries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.SQLite.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DefaultFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, WriteDefault(tmpDir))

	cfg, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
sqlite:
  path: data/catalog.db
catalog:
  default_limit: 25
feed:
  limit: 151
  timeout: 3s
`)

	cfg, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "data/catalog.db", cfg.SQLite.Path)
	assert.Equal(t, 25, cfg.Catalog.DefaultLimit)
	assert.Equal(t, 151, cfg.Feed.Limit)
	assert.Equal(t, 3*time.Second, cfg.Feed.Timeout)
	// Untouched keys keep their defaults
	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.Feed.BaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "catalog:\n  default_limit: 25\n")

	t.Setenv("POKEDEX_DEFAULT_LIMIT", "5")
	t.Setenv("POKEDEX_DB_PATH", ":memory:")
	t.Setenv("POKEDEX_FEED_TIMEOUT", "1500ms")
	t.Setenv("POKEDEX_LOG_JSON", "true")

	cfg, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Catalog.DefaultLimit)
	assert.Equal(t, ":memory:", cfg.SQLite.Path)
	assert.Equal(t, 1500*time.Millisecond, cfg.Feed.Timeout)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file carries init hint", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config file not found")
		assert.Contains(t, errors.FlattenHints(err), "pokedex init")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeConfig(t, tmpDir, "catalog: [unclosed")
		_, err := Load(tmpDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config file")
	})

	t.Run("bad env value", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, WriteDefault(tmpDir))
		t.Setenv("POKEDEX_FEED_LIMIT", "lots")
		_, err := Load(tmpDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "environment overrides")
	})

	t.Run("invalid values", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeConfig(t, tmpDir, "catalog:\n  default_limit: -1\n")
		_, err := Load(tmpDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_limit")
	})
}

func TestValidate_BaseURL(t *testing.T) {
	cfg := Default()
	cfg.Feed.BaseURL = "pokeapi.co"
	assert.Error(t, cfg.Validate())

	cfg.Feed.BaseURL = "http://localhost:8080/api"
	assert.NoError(t, cfg.Validate())
}

func TestDatabasePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "default", path: "", expected: "/srv/dex/.pokedex/pokedex.db"},
		{name: "relative", path: "data/dex.db", expected: "/srv/dex/data/dex.db"},
		{name: "absolute", path: "/var/lib/dex.db", expected: "/var/lib/dex.db"},
		{name: "memory", path: ":memory:", expected: ":memory:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.SQLite.Path = tt.path
			assert.Equal(t, tt.expected, cfg.DatabasePath("/srv/dex"))
		})
	}
}

func TestConfigDir(t *testing.T) {
	result := ConfigDir("/home/user/project")
	assert.Equal(t, "/home/user/project/.pokedex", result)
}

func TestConfigFilePath(t *testing.T) {
	result := ConfigFilePath("/home/user/project")
	assert.Equal(t, "/home/user/project/.pokedex/config.yaml", result)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, WriteDefault(tmpDir))
	assert.True(t, Exists(tmpDir))

	err := WriteDefault(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWrite_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := Default()
	cfg.Catalog.DefaultLimit = 42
	cfg.Feed.Timeout = 2 * time.Minute

	require.NoError(t, Write(tmpDir, cfg))
	loaded, err := Load(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
