package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"photoauth/pkg/logging"

	"gopkg.in/yaml.v3"
)

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// ConfigFile is an optional YAML file layered over the defaults.
	// A missing file is an error only when the path was given explicitly.
	ConfigFile string

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// Load builds the configuration for a variant: defaults, then the YAML file,
// then the environment. Command-line flags are applied by the caller
// afterwards, and Validate must be called once they are.
func Load(variant Variant, opts LoadOptions) (Config, error) {
	cfg := GetDefaultConfig(variant)

	if opts.ConfigFile != "" {
		if err := loadFile(opts.ConfigFile, &cfg); err != nil {
			return Config{}, err
		}
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	applyEnv(&cfg, getenv)

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ConfigurationError{
				Field:   "config",
				Message: fmt.Sprintf("config file %s does not exist", path),
			}
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	variant := cfg.Variant
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ConfigurationError{
			Field:   "config",
			Message: fmt.Sprintf("error parsing config file %s", path),
			Reason:  err,
		}
	}
	cfg.Variant = variant

	logging.Debug("Config", "Loaded configuration from %s", path)
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvClientID)); v != "" {
		cfg.ClientID = v
	}
	if v := strings.TrimSpace(getenv(EnvClientSecret)); v != "" {
		cfg.ClientSecret = v
	}
	// The localhost flow always redirects to its own listener.
	if cfg.Variant == VariantManual {
		if v := strings.TrimSpace(getenv(EnvRedirectURI)); v != "" {
			cfg.RedirectURI = v
		}
	}
	if v := strings.TrimSpace(getenv(EnvRefreshToken)); v != "" {
		cfg.RefreshToken = v
	}
}
