// Package config loads deployment settings for leafscan. Analysis policy
// (size limits, thresholds) is fixed at compile time in the owning packages;
// only deployment concerns live here.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds leafscan configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP listen address, e.g. ":8080"
}

type ClassifierConfig struct {
	Endpoint  string `yaml:"endpoint"`   // classification endpoint URL
	TimeoutMs int    `yaml:"timeout_ms"` // analyze call budget
}

type LoggingConfig struct {
	Level string `yaml:"level"` // zap level name, e.g. "info"
}

// Timeout returns the analyze budget as a duration.
func (c ClassifierConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Classifier: ClassifierConfig{
			Endpoint:  "http://localhost:8000/analyze",
			TimeoutMs: 20000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Classifier.Endpoint == "" {
		cfg.Classifier.Endpoint = "http://localhost:8000/analyze"
	}
	if cfg.Classifier.TimeoutMs == 0 {
		cfg.Classifier.TimeoutMs = 20000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
