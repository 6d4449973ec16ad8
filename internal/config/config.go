package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Client  ClientConfig  `yaml:"client"`
	Storage StorageConfig `yaml:"storage"`
}

type AppConfig struct {
	Name        string `yaml:"name" env:"APP_NAME" env-default:"jokebox"`
	Environment string `yaml:"environment" env:"APP_ENVIRONMENT" env-default:"production"`
	LogLevel    string `yaml:"log_level" env:"APP_LOG_LEVEL" env-default:"info"`
}

type ClientConfig struct {
	Endpoint  string        `yaml:"endpoint" env:"CLIENT_ENDPOINT" env-default:"https://icanhazdadjoke.com/"`
	UserAgent string        `yaml:"user_agent" env:"CLIENT_USER_AGENT" env-default:"jokebox/1.0"`
	Timeout   time.Duration `yaml:"timeout" env:"CLIENT_TIMEOUT" env-default:"30s"`
}

type StorageConfig struct {
	// Dir is the application-private directory holding the favourites file
	// and logs. Empty means ~/.jokebox.
	Dir string `yaml:"dir" env:"STORAGE_DIR"`
}

// ResolveDir returns the storage directory, expanding the home-relative
// default when none is configured.
func (s StorageConfig) ResolveDir() (string, error) {
	if s.Dir != "" {
		return s.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".jokebox"), nil
}

// Load reads configuration from the file named by CONFIG_PATH, then applies
// environment overrides. The file is optional: the app has no secrets, so a
// missing file just means defaults.
func Load() (*Config, error) {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from %s: %w", configPath, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return &cfg, nil
}
