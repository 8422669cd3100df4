// Package config loads safehours settings from defaults, an optional YAML
// file and SAFEHOURS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StorageConfig configures the sqlite logbook database.
type StorageConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	Logbook     string `yaml:"logbook" mapstructure:"logbook"`
	BusyRetries uint   `yaml:"busy_retries" mapstructure:"busy_retries"`
}

// DisplayConfig configures terminal output.
type DisplayConfig struct {
	Color bool `yaml:"color" mapstructure:"color"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:        filepath.Join(homeDir(), ".local", "share", "safehours", "database.db"),
			Logbook:     "default",
			BusyRetries: 5,
		},
		Display: DisplayConfig{Color: true},
		Log:     LogConfig{Level: "error"},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".config", "safehours", "config.yaml")
}

// Load reads the configuration at path over the defaults. A missing file is
// not an error when path is the default location.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	def := Default()
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("safehours")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.logbook", def.Storage.Logbook)
	v.SetDefault("storage.busy_retries", def.Storage.BusyRetries)
	v.SetDefault("display.color", def.Display.Color)
	v.SetDefault("log.level", def.Log.Level)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	if cfg.Storage.Logbook == "" {
		cfg.Storage.Logbook = def.Storage.Logbook
	}
	return cfg, nil
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return Write(path, Default())
}

// Write marshals cfg as YAML to path.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	header := []byte("# safehours configuration\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

func expandHome(p string) string {
	if p == "~" {
		return homeDir()
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(homeDir(), p[2:])
	}
	return p
}
