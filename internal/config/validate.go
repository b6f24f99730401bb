package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the loaded config for required fields and safe values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}

	endpoint := strings.TrimSpace(cfg.Classifier.Endpoint)
	if endpoint == "" {
		return errors.New("classifier.endpoint must be set")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("classifier.endpoint is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("classifier.endpoint must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("classifier.endpoint must include a host")
	}

	if cfg.Classifier.TimeoutMs < 0 {
		return errors.New("classifier.timeout_ms must not be negative")
	}

	return nil
}
