package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/fsinventory/fsinv"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Inventory InventoryConfig `mapstructure:"inventory"`
}

// InventoryConfig stores scan related configurations.
type InventoryConfig struct {
	ChecksumAlgorithm string `mapstructure:"checksumAlgorithm"`
	ChunkSize         int    `mapstructure:"chunkSize"`
	IncludeContent    bool   `mapstructure:"includeContent"`
	MaxWorkers        int    `mapstructure:"maxWorkers"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("inventory.checksumAlgorithm", internal.DefaultChecksumAlgorithm)
	viper.SetDefault("inventory.chunkSize", internal.DefaultChunkSize)
	viper.SetDefault("inventory.includeContent", true)
	// 0 means derive the worker count from the number of CPUs
	viper.SetDefault("inventory.maxWorkers", 0)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // e.g. inventory.checksumAlgorithm becomes INVENTORY_CHECKSUMALGORITHM

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used. This is not an error for the application to halt on.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
