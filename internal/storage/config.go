package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Config holds application configuration.
type Config struct {
	APIKey                string `json:"apiKey"`
	Language              string `json:"language"`
	StorageBackend        string `json:"storageBackend"`
	RequestTimeoutSeconds int    `json:"requestTimeoutSeconds"`
	CacheSize             int    `json:"cacheSize"`
	SearchCacheMinutes    int    `json:"searchCacheMinutes"`
	PopularCacheMinutes   int    `json:"popularCacheMinutes"`
	DetailsCacheMinutes   int    `json:"detailsCacheMinutes"`
	ConfirmRemove         *bool  `json:"confirmRemove"`
	LogLevel              string `json:"logLevel"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	confirm := true
	return Config{
		Language:              "pt-BR",
		StorageBackend:        BackendJSON,
		RequestTimeoutSeconds: 10,
		CacheSize:             256,
		SearchCacheMinutes:    5,
		PopularCacheMinutes:   10,
		DetailsCacheMinutes:   10,
		ConfirmRemove:         &confirm,
		LogLevel:              "info",
	}
}

// RequestTimeout returns the HTTP timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// ShouldConfirmRemove reports whether removing a favorite asks first.
func (c Config) ShouldConfirmRemove() bool {
	return c.ConfirmRemove == nil || *c.ConfirmRemove
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
// TMDB_API_KEY and CINE_LOG_LEVEL override the file.
func LoadConfig(path string) (*Config, error) {
	config, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	if key := os.Getenv("TMDB_API_KEY"); key != "" {
		config.APIKey = key
	}
	if level := os.Getenv("CINE_LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}

	return config, nil
}

func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.Language == "" {
		config.Language = defaults.Language
	}
	if config.StorageBackend == "" {
		config.StorageBackend = defaults.StorageBackend
	}
	if config.RequestTimeoutSeconds <= 0 {
		config.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if config.CacheSize <= 0 {
		config.CacheSize = defaults.CacheSize
	}
	if config.SearchCacheMinutes <= 0 {
		config.SearchCacheMinutes = defaults.SearchCacheMinutes
	}
	if config.PopularCacheMinutes <= 0 {
		config.PopularCacheMinutes = defaults.PopularCacheMinutes
	}
	if config.DetailsCacheMinutes <= 0 {
		config.DetailsCacheMinutes = defaults.DetailsCacheMinutes
	}
	if config.ConfirmRemove == nil {
		config.ConfirmRemove = defaults.ConfirmRemove
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/cine/config.json
func DefaultConfigFilePath() (string, error) {
	return defaultFile("config.json")
}
