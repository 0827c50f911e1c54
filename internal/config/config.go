// Package config loads groupie's settings from a JSON file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nikbrunner/groupie/internal/audio"
	"github.com/nikbrunner/groupie/internal/itunes"
	"github.com/nikbrunner/groupie/internal/preview"
	"github.com/nikbrunner/groupie/internal/tracker"
)

const (
	appDir   = "groupie"
	fileName = "config.json"
	logName  = "groupie.log"
)

// Environment overrides.
const (
	EnvTrackerURL     = "GROUPIE_TRACKER_URL"
	EnvSearchURL      = "GROUPIE_SEARCH_URL"
	EnvPlayer         = "GROUPIE_PLAYER"
	EnvLogLevel       = "GROUPIE_LOG_LEVEL"
	EnvLogFile        = "GROUPIE_LOG_FILE"
	EnvPreviewDelayMs = "GROUPIE_PREVIEW_DELAY_MS"
	EnvLocale         = "GROUPIE_LOCALE"
	EnvCards          = "GROUPIE_CARDS"
)

// Config holds application configuration.
type Config struct {
	TrackerURL     string `json:"trackerUrl"`
	SearchURL      string `json:"searchUrl"`
	SearchLimit    int    `json:"searchLimit"`
	PreviewDelayMs int    `json:"previewDelayMs"`
	Player         string `json:"player"`
	Locale         string `json:"locale"`
	LogLevel       string `json:"logLevel"`
	LogFile        string `json:"logFile"`
	LogFormat      string `json:"logFormat"`

	// CardsFile reads card markup from disk instead of the tracker API.
	CardsFile string `json:"cardsFile,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TrackerURL:     tracker.DefaultBaseURL,
		SearchURL:      itunes.DefaultBaseURL,
		SearchLimit:    itunes.DefaultLimit,
		PreviewDelayMs: int(preview.DefaultDelay / time.Millisecond),
		Player:         audio.DefaultBinary,
		Locale:         "en",
		LogLevel:       "info",
		LogFormat:      "json",
	}
}

// Load reads config from the JSON file, creating it with defaults when it
// doesn't exist. Missing fields fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// best effort: a read-only home still gets defaults
			_ = Save(path, &config)
			return &config, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	config.fillDefaults()

	return &config, nil
}

func (c *Config) fillDefaults() {
	defaults := DefaultConfig()
	if c.TrackerURL == "" {
		c.TrackerURL = defaults.TrackerURL
	}
	if c.SearchURL == "" {
		c.SearchURL = defaults.SearchURL
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = defaults.SearchLimit
	}
	if c.PreviewDelayMs <= 0 {
		c.PreviewDelayMs = defaults.PreviewDelayMs
	}
	if c.Player == "" {
		c.Player = defaults.Player
	}
	if c.Locale == "" {
		c.Locale = defaults.Locale
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}
}

// ApplyEnv overrides fields from environment variables looked up with getenv.
// An unparsable GROUPIE_PREVIEW_DELAY_MS is an error.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvTrackerURL, &c.TrackerURL},
		{EnvSearchURL, &c.SearchURL},
		{EnvPlayer, &c.Player},
		{EnvLogLevel, &c.LogLevel},
		{EnvLogFile, &c.LogFile},
		{EnvLocale, &c.Locale},
		{EnvCards, &c.CardsFile},
	}
	for _, s := range strs {
		if v := getenv(s.key); v != "" {
			*s.dst = v
		}
	}

	if v := getenv(EnvPreviewDelayMs); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return fmt.Errorf("invalid %s %q", EnvPreviewDelayMs, v)
		}
		c.PreviewDelayMs = ms
	}
	return nil
}

// PreviewDelay is the hover debounce as a duration.
func (c *Config) PreviewDelay() time.Duration {
	return time.Duration(c.PreviewDelayMs) * time.Millisecond
}

// Save writes config to the JSON file.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Dir returns ~/.config/groupie.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appDir), nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/groupie/config.json
func DefaultConfigFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// DefaultLogFilePath returns ~/.config/groupie/groupie.log.
func DefaultLogFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logName), nil
}
