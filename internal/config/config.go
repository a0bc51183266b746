// Package config provides persistent configuration for the iftar-timer CLI.
//
// Configuration is stored as JSON at ~/.config/iftar-timer/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
// Restored values are validated on Set and on use; invalid cached data is
// rejected, never trusted.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/iftar-timer/internal/astro"
	"github.com/smokyabdulrahman/iftar-timer/internal/phase"
)

const (
	configDirName  = "iftar-timer"
	configFileName = "config.json"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"city", "country",
	"latitude", "longitude",
	"timezone",
	"method", "madhab",
	"time_format",
	"theme",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults or auto-detect).
type Config struct {
	City       string  `json:"city,omitempty"`
	Country    string  `json:"country,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Timezone   string  `json:"timezone,omitempty"`    // IANA name, e.g. "Asia/Riyadh"
	Method     string  `json:"method,omitempty"`      // calculation method name
	Madhab     string  `json:"madhab,omitempty"`      // "shafi" or "hanafi"
	TimeFormat string  `json:"time_format,omitempty"` // "12h" or "24h"
	Theme      string  `json:"theme,omitempty"`       // phase name pinning the theme, "" for auto

	// CacheDir overrides the location-cache directory. Flag-only: it is not
	// a ValidKeys member and never persists to the config file.
	CacheDir string `json:"-"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Method:     string(astro.DefaultMethod),
		Madhab:     string(astro.DefaultMadhab),
		TimeFormat: "12h",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "city":
		c.City = value
	case "country":
		c.Country = value
	case "latitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: must be a number", value)
		}
		if v < -90 || v > 90 {
			return fmt.Errorf("invalid latitude %q: must be between -90 and 90", value)
		}
		c.Latitude = v
	case "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: must be a number", value)
		}
		if v < -180 || v > 180 {
			return fmt.Errorf("invalid longitude %q: must be between -180 and 180", value)
		}
		c.Longitude = v
	case "timezone":
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("invalid timezone %q: must be an IANA name like Asia/Riyadh", value)
		}
		c.Timezone = value
	case "method":
		m, err := astro.ParseMethod(value)
		if err != nil {
			return err
		}
		c.Method = string(m)
	case "madhab":
		m, err := astro.ParseMadhab(value)
		if err != nil {
			return err
		}
		c.Madhab = string(m)
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "theme":
		if value == "auto" {
			value = ""
		}
		if value != "" && !isValidPhaseName(value) {
			return fmt.Errorf("invalid theme %q: must be \"auto\" or one of the phase names", value)
		}
		c.Theme = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "city":
		return c.City, nil
	case "country":
		return c.Country, nil
	case "latitude":
		if c.Latitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Latitude, 'f', -1, 64), nil
	case "longitude":
		if c.Longitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Longitude, 'f', -1, 64), nil
	case "timezone":
		return c.Timezone, nil
	case "method":
		return c.Method, nil
	case "madhab":
		return c.Madhab, nil
	case "time_format":
		return c.TimeFormat, nil
	case "theme":
		return c.Theme, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// MethodOrDefault returns the parsed method, falling back to the default when
// unset or (for stale config files edited by hand) unparseable.
func (c *Config) MethodOrDefault() astro.Method {
	m, err := astro.ParseMethod(c.Method)
	if err != nil {
		return astro.DefaultMethod
	}
	return m
}

// MadhabOrDefault returns the parsed madhab, falling back to the default.
func (c *Config) MadhabOrDefault() astro.Madhab {
	m, err := astro.ParseMadhab(c.Madhab)
	if err != nil {
		return astro.DefaultMadhab
	}
	return m
}

func isValidPhaseName(name string) bool {
	for _, p := range phase.All {
		if name == string(p) {
			return true
		}
	}
	return false
}
