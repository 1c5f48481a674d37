// Package config loads grappleflow configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Config is the full application configuration.
type Config struct {
	Data  DataConfig  `koanf:"data"`
	Coach CoachConfig `koanf:"coach"`
}

// DataConfig locates the persisted journal state.
type DataConfig struct {
	Dir string `koanf:"dir"`
}

// CoachConfig selects and configures the AI advice provider.
type CoachConfig struct {
	Provider string        `koanf:"provider"` // gemini, ollama or none
	Model    string        `koanf:"model"`
	BaseURL  string        `koanf:"base_url"`
	APIKey   string        `koanf:"api_key"`
	Timeout  time.Duration `koanf:"timeout"`
}

const envPrefix = "GRAPPLEFLOW_"

// Load reads configuration with the usual precedence: environment
// variables override the YAML file, which overrides hardcoded defaults.
// An empty configPath means ~/.config/grappleflow/config.yaml. A missing
// file is not an error.
//
// Environment variables map section and field with the first underscore:
// GRAPPLEFLOW_COACH_PROVIDER -> coach.provider. GEMINI_API_KEY is honored
// as a fallback for coach.api_key.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		configPath = filepath.Join(home, ".config", "grappleflow", "config.yaml")
	}

	if content, err := os.ReadFile(configPath); err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// GRAPPLEFLOW_COACH_API_KEY -> coach.api_key
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(s, "_", 2)
		if len(parts) == 1 {
			return s
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) error {
	if cfg.Data.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.Data.Dir = filepath.Join(home, ".grappleflow")
	}
	if cfg.Coach.Provider == "" {
		cfg.Coach.Provider = "gemini"
	}
	if cfg.Coach.APIKey == "" {
		cfg.Coach.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Coach.Timeout == 0 {
		cfg.Coach.Timeout = 30 * time.Second
	}
	return nil
}

// Validate rejects configurations the rest of the app cannot act on.
func (c *Config) Validate() error {
	switch c.Coach.Provider {
	case "gemini", "ollama", "none":
	default:
		return fmt.Errorf("invalid coach provider %q (use gemini, ollama or none)", c.Coach.Provider)
	}
	if c.Coach.Timeout < 0 {
		return fmt.Errorf("coach timeout must not be negative")
	}
	return nil
}
