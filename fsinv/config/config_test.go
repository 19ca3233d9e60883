package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfigFile(t, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sha256", cfg.Inventory.ChecksumAlgorithm)
	assert.Equal(t, 4096, cfg.Inventory.ChunkSize)
	assert.True(t, cfg.Inventory.IncludeContent)
	assert.Equal(t, 0, cfg.Inventory.MaxWorkers)
}

func TestLoadConfig_FromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfigFile(t, `
inventory:
  checksumAlgorithm: sha512
  chunkSize: 8192
  includeContent: false
  maxWorkers: 8
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sha512", cfg.Inventory.ChecksumAlgorithm)
	assert.Equal(t, 8192, cfg.Inventory.ChunkSize)
	assert.False(t, cfg.Inventory.IncludeContent)
	assert.Equal(t, 8, cfg.Inventory.MaxWorkers)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfigFile(t, "inventory: [not: a: mapping")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
