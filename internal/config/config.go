package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Log       LogConfig       `mapstructure:"log"`
}

// DataConfig locates the on-disk state (holiday cache, countdown store)
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// ProvidersConfig configures the upstream holiday data sources
type ProvidersConfig struct {
	TimorURL     string `mapstructure:"timor_url"`
	NagerURL     string `mapstructure:"nager_url"`
	FetchTimeout string `mapstructure:"fetch_timeout"`
}

// LogConfig configures logging. Stdout carries the MCP wire protocol, so
// logs go to stderr or, when File is set, to a rotating log file.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing config file is not an
// error: every field has a usable default.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.chrono-server")
		v.AddConfigPath("/etc/chrono-server")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && errors.As(err, &notFound) {
			return defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := defaults()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func defaults() *Config {
	return &Config{
		Data: DataConfig{
			Dir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chrono-server"
	}
	return filepath.Join(home, ".chrono-server")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Providers.FetchTimeout != "" {
		if _, err := time.ParseDuration(c.Providers.FetchTimeout); err != nil {
			return fmt.Errorf("providers.fetch_timeout is not a duration: %w", err)
		}
	}
	return nil
}

// GetFetchTimeout returns the provider fetch timeout
func (c *ProvidersConfig) GetFetchTimeout() time.Duration {
	if c.FetchTimeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Data.Dir = os.ExpandEnv(c.Data.Dir)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
