package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// NotifyConfig controls desktop notifications for external changes.
type NotifyConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config holds the application configuration.
type Config struct {
	File          string        `mapstructure:"file"`           // shared todo file path
	Theme         string        `mapstructure:"theme"`          // color theme name
	Refresh       time.Duration `mapstructure:"refresh"`        // external-change poll interval
	HideCompleted bool          `mapstructure:"hide_completed"` // start with completed items hidden
	Notify        NotifyConfig  `mapstructure:"notify"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		File:    defaultDataFile(),
		Theme:   "nord",
		Refresh: 500 * time.Millisecond,
		Notify:  NotifyConfig{Enabled: false},
	}
}

func defaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "todos.json"
	}
	return filepath.Join(home, ".local", "share", "tandem", "todos.json")
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tandem", "config.yaml"), nil
}

// Load reads the config file if present, falling back to defaults for
// anything unset. A missing config file is fine.
func Load() (Config, error) {
	cfg := Default()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetDefault("file", cfg.File)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("refresh", cfg.Refresh)
	v.SetDefault("hide_completed", cfg.HideCompleted)
	v.SetDefault("notify.enabled", cfg.Notify.Enabled)

	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	if cfg.Refresh <= 0 {
		cfg.Refresh = Default().Refresh
	}
	return cfg, nil
}
