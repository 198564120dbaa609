package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# Pokedex Configuration

sqlite:
  # path: .pokedex/pokedex.db (or set POKEDEX_DB_PATH env var)

catalog:
  default_limit: 10

feed:
  base_url: https://pokeapi.co/api/v2
  limit: 700
  timeout: 10s
  retries: 2

log:
  level: info
  json: false
`

// WriteDefault creates the .pokedex directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	if _, err := os.Stat(configFile); err == nil {
		return errors.Newf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	return nil
}

// Write writes the given config to the config file.
func Write(basePath string, cfg *Config) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	return nil
}

// Exists checks if a pokedex config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
