// Package config handles workspace configuration for appium-healer.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the workspace configuration (config.yaml).
type Config struct {
	// Stores
	LocatorsDir string `yaml:"locatorsDir"` // Locator definition sources
	HistoryFile string `yaml:"historyFile"` // Persisted healing history
	EventsFile  string `yaml:"eventsFile"`  // Append-only healing event log
	LogFile     string `yaml:"logFile"`     // Engine log sink

	// Driver settings
	AppiumURL    string                 `yaml:"appiumUrl"`    // Appium server URL
	Capabilities map[string]interface{} `yaml:"capabilities"` // Session capabilities
}

// Defaults returns the configuration used when no config file exists,
// rooted at the workspace home.
func Defaults() *Config {
	home := GetHome()
	return &Config{
		LocatorsDir: filepath.Join(home, "locators"),
		HistoryFile: filepath.Join(home, "logs", "healing", "healing-history.properties"),
		EventsFile:  filepath.Join(home, "logs", "healing", "healing-events.csv"),
		LogFile:     filepath.Join(home, "logs", "healer.log"),
		AppiumURL:   "http://127.0.0.1:4723",
	}
}

// Load loads configuration from a file, filling unset paths from Defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try config.yaml first
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try config.yml
	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, run on defaults
	return Defaults(), nil
}
