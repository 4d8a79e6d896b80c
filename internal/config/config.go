// Package config loads tx configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (TX_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .tx.yaml in current directory
//  2. ~/.config/tx/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all tx configuration.
type Config struct {
	// Storage directories. Scripts and JSON descriptors live apart so the
	// scripts directory can go on PATH or be sourced directly.
	ScriptsDir string `yaml:"scripts_dir"`
	LayoutsDir string `yaml:"layouts_dir"`

	// Editor is the external text editor program used by "edit script
	// directly" and the config command.
	Editor string `yaml:"editor"`

	// LLM settings for the suggest command.
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	MaxTokens int64  `yaml:"max_tokens"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return &Config{
		ScriptsDir: filepath.Join(dataDir, "tx", "scripts"),
		LayoutsDir: filepath.Join(dataDir, "tx", "layouts"),
		Editor:     "vi",
		Provider:   "anthropic",
		Model:      "claude-sonnet-4-5",
		MaxTokens:  4096,
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	return cfg, nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	// 1. Current directory
	if data, err := os.ReadFile(".tx.yaml"); err == nil {
		return ".tx.yaml", data, nil
	}

	// 2. XDG config dir / ~/.config
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "tx", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.ScriptsDir != "" {
		cfg.ScriptsDir = expandHome(file.ScriptsDir)
	}
	if file.LayoutsDir != "" {
		cfg.LayoutsDir = expandHome(file.LayoutsDir)
	}
	if file.Editor != "" {
		cfg.Editor = file.Editor
	}
	if file.Provider != "" {
		cfg.Provider = file.Provider
	}
	if file.Model != "" {
		cfg.Model = file.Model
	}
	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if file.APIKey != "" {
		cfg.APIKey = file.APIKey
	}
	if file.MaxTokens > 0 {
		cfg.MaxTokens = file.MaxTokens
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("TX_SCRIPTS_DIR"); v != "" {
		cfg.ScriptsDir = expandHome(v)
	}
	if v := os.Getenv("TX_LAYOUTS_DIR"); v != "" {
		cfg.LayoutsDir = expandHome(v)
	}
	if v := os.Getenv("TX_EDITOR"); v != "" {
		cfg.Editor = v
	} else if v := os.Getenv("EDITOR"); v != "" {
		cfg.Editor = v
	}
	if v := os.Getenv("TX_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("TX_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TX_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TX_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}

	// API key fallbacks for the suggest command
	if cfg.APIKey == "" {
		switch cfg.Provider {
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "openai":
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
