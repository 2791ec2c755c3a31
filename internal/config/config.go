// Package config loads and validates the service configuration from YAML,
// with environment overrides for the secrets that should not live in files.
// Configuration is resolved once at startup and passed explicitly into
// constructors; nothing in the repo reads the environment at import time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/astroforge/astroforge/internal/llm"
	"github.com/astroforge/astroforge/internal/llm/retry"
)

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
}

// ServerConfig defines listener configuration.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LLMConfig configures the orchestration layer. The API key may come from
// the file or the OPENAI_API_KEY environment variable; the environment wins
// only when the file leaves it empty.
type LLMConfig struct {
	Endpoint             string      `yaml:"endpoint"`
	APIKey               string      `yaml:"api_key"`
	Model                string      `yaml:"model"`
	VisionModel          string      `yaml:"vision_model"`
	TextTimeoutSeconds   int         `yaml:"text_timeout_seconds"`
	VisionTimeoutSeconds int         `yaml:"vision_timeout_seconds"`
	Retry                RetryConfig `yaml:"retry"`
}

// RetryConfig is the file-level retry policy. MaxAttempts 0 keeps the
// default single-attempt behavior.
type RetryConfig struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialIntervalMS int     `yaml:"initial_interval_ms"`
	MaxIntervalMS     int     `yaml:"max_interval_ms"`
	Multiplier        float64 `yaml:"multiplier"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8000},
		LLM:    LLMConfig{},
	}
}

// Load reads YAML configuration from disk, applies environment overrides,
// and validates the result. An empty path yields the defaults plus
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return Config{}, fmt.Errorf("resolve config path: %w", err)
		}
		data, err := os.ReadFile(absPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", absPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", absPath, err)
		}
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = os.Getenv("OPENAI_MODEL")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs sanity checks on the configuration.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid TCP port, got %d", c.Server.Port)
	}
	if c.LLM.TextTimeoutSeconds < 0 || c.LLM.VisionTimeoutSeconds < 0 {
		return fmt.Errorf("llm timeouts must not be negative")
	}
	if c.LLM.Retry.MaxAttempts < 0 {
		return fmt.Errorf("llm.retry.max_attempts must not be negative")
	}
	return nil
}

// ClientConfig translates the file configuration into the orchestrator's
// explicit config. A missing API key is deliberately passed through: the
// orchestrator fails fast per call with its configuration-missing kind, and
// the health endpoint reports the gap.
func (c Config) ClientConfig() llm.Config {
	out := llm.Config{
		Endpoint:      c.LLM.Endpoint,
		APIKey:        c.LLM.APIKey,
		Model:         c.LLM.Model,
		VisionModel:   c.LLM.VisionModel,
		TextTimeout:   time.Duration(c.LLM.TextTimeoutSeconds) * time.Second,
		VisionTimeout: time.Duration(c.LLM.VisionTimeoutSeconds) * time.Second,
	}
	if c.LLM.Retry.MaxAttempts > 0 {
		rc := retry.DefaultConfig()
		rc.MaxAttempts = c.LLM.Retry.MaxAttempts
		if c.LLM.Retry.InitialIntervalMS > 0 {
			rc.InitialInterval = time.Duration(c.LLM.Retry.InitialIntervalMS) * time.Millisecond
		}
		if c.LLM.Retry.MaxIntervalMS > 0 {
			rc.MaxInterval = time.Duration(c.LLM.Retry.MaxIntervalMS) * time.Millisecond
		}
		if c.LLM.Retry.Multiplier >= 1.0 {
			rc.Multiplier = c.LLM.Retry.Multiplier
		}
		out.Retry = rc
	}
	return out
}
