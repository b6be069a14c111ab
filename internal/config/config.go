// Package config holds the user configuration for automcp.
//
// Configuration is a small YAML file in the platform config directory.
// Everything in it can also be supplied per-invocation through flags or
// the VERIFAI_ASSISTANT_DIR environment variable, so a missing config
// file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"automcp/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const AppName = "automcp" // application name used for the config directory

// EnvVerifAIDir is the environment variable naming the VerifAI Assistant
// data directory, as consumed by the assistant's own integrations.
const EnvVerifAIDir = "VERIFAI_ASSISTANT_DIR"

// Config holds user configuration for automcp.
type Config struct {
	// VerifAIPath is the VerifAI Assistant data directory whose experts
	// are served. Empty means "not configured"; callers must then supply
	// the path per call or per invocation.
	VerifAIPath string `yaml:"verifai_path"`
	// MatchRule selects the expert matching convention (see the experts
	// package). Empty selects the default "dirs" rule.
	MatchRule string `yaml:"match_rule"`
	Version   string `yaml:"version"`   // Track config version
	InitTime  int64  `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard config file path for the current platform.
func ConfigPath() (string, error) {
	configPath := filepath.Join(xdg.ConfigHome, AppName, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// FindConfigFile returns the path to the config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found", "path", primary)
		return primary, true
	}

	return primary, false
}

// Load loads the config from the standard location. A missing file yields
// the defaults rather than an error.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	if !exists {
		logging.Debug("No config file, using defaults")
		cfg := DefaultConfig()
		return &cfg, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path.
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a Config with sensible defaults. The assistant
// path has no default on purpose: pointing at the wrong directory would
// silently list the wrong experts.
func DefaultConfig() Config {
	return Config{
		VerifAIPath: "",
		MatchRule:   "dirs",
		Version:     "1.0",
		InitTime:    0, // Will be set during first save
	}
}

// Resolve produces the effective configuration for one invocation.
// Precedence, highest first: the --path/--match flags, the
// VERIFAI_ASSISTANT_DIR environment variable, the config file.
func Resolve(pathFlag, matchFlag string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if env := os.Getenv(EnvVerifAIDir); env != "" {
		cfg.VerifAIPath = env
	}
	if pathFlag != "" {
		cfg.VerifAIPath = pathFlag
	}
	if matchFlag != "" {
		cfg.MatchRule = matchFlag
	}

	return cfg, nil
}

// Save writes the config to the standard location.
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Restrictive permissions; the file may name a private directory.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
