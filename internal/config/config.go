// Package config loads concierge configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all concierge configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Server configures the WebSocket listener.
	Server ServerConfig `yaml:"server"`

	// LLM configures the answer generator.
	LLM LLMConfig `yaml:"llm"`

	// Mailer configures the outbound send capability.
	Mailer MailerConfig `yaml:"mailer"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the WebSocket server.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LLMConfig configures the answer generator backend.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// MailerConfig configures the outbound mail sender.
type MailerConfig struct {
	// Latency is the simulated send delay of the stub sender.
	Latency string `yaml:"latency"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "concierge",
		Version: "1.0.0",

		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "10s",
		},

		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
			Timeout:  "30s",
		},

		Mailer: MailerConfig{
			Latency: "1s",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "gemini"
	}
	if addr := os.Getenv("CONCIERGE_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if model := os.Getenv("CONCIERGE_MODEL"); model != "" {
		c.LLM.Model = model
	}
}

// Validate checks that the configuration is usable for serving.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required (set GEMINI_API_KEY or llm.api_key)")
	}
	if _, err := time.ParseDuration(c.LLM.Timeout); c.LLM.Timeout != "" && err != nil {
		return fmt.Errorf("invalid llm.timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Mailer.Latency); c.Mailer.Latency != "" && err != nil {
		return fmt.Errorf("invalid mailer.latency: %w", err)
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); c.Server.ShutdownTimeout != "" && err != nil {
		return fmt.Errorf("invalid server.shutdown_timeout: %w", err)
	}
	return nil
}

// parseDuration parses s, falling back to def when s is empty or invalid.
func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout.
func (c ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(c.ShutdownTimeout, 10*time.Second)
}

// TimeoutDuration returns the parsed LLM call timeout.
func (c LLMConfig) TimeoutDuration() time.Duration {
	return parseDuration(c.Timeout, 30*time.Second)
}

// LatencyDuration returns the parsed stub sender latency.
func (c MailerConfig) LatencyDuration() time.Duration {
	return parseDuration(c.Latency, time.Second)
}
