package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/fbrowse"
	configFile = "config.json"
)

// rawConfig is the unmarshaling intermediary. Pointer fields distinguish
// "unset" from zero values so defaults survive partial files.
type rawConfig struct {
	Browser rawBrowserConfig `json:"browser" yaml:"browser"`
	UI      rawUIConfig      `json:"ui" yaml:"ui"`
	Keymap  KeymapConfig     `json:"keymap" yaml:"keymap"`
	Watch   rawWatchConfig   `json:"watch" yaml:"watch"`
	Log     LogConfig        `json:"log" yaml:"log"`
}

type rawBrowserConfig struct {
	Root   string   `json:"root" yaml:"root"`
	Ignore []string `json:"ignore" yaml:"ignore"`
}

type rawUIConfig struct {
	Theme       string `json:"theme" yaml:"theme"`
	Highlight   *bool  `json:"highlight" yaml:"highlight"`
	SyntaxTheme string `json:"syntaxTheme" yaml:"syntaxTheme"`
}

type rawWatchConfig struct {
	Enabled  *bool  `json:"enabled" yaml:"enabled"`
	Debounce string `json:"debounce" yaml:"debounce"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/fbrowse/config.json. Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil // Return defaults when there is no home directory
		}
	}
	path = ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := decode(path, data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := mergeConfig(cfg, &raw); err != nil {
		return nil, err
	}

	cfg.Browser.Root = ExpandPath(cfg.Browser.Root)
	cfg.Log.File = ExpandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decode(path string, data []byte, raw *rawConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, raw)
	default:
		return json.Unmarshal(data, raw)
	}
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) error {
	// Browser
	if raw.Browser.Root != "" {
		cfg.Browser.Root = raw.Browser.Root
	}
	if raw.Browser.Ignore != nil {
		cfg.Browser.Ignore = append([]string(nil), raw.Browser.Ignore...)
	}

	// UI
	if raw.UI.Theme != "" {
		cfg.UI.Theme = raw.UI.Theme
	}
	if raw.UI.Highlight != nil {
		cfg.UI.Highlight = *raw.UI.Highlight
	}
	if raw.UI.SyntaxTheme != "" {
		cfg.UI.SyntaxTheme = raw.UI.SyntaxTheme
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// Watch
	if raw.Watch.Enabled != nil {
		cfg.Watch.Enabled = *raw.Watch.Enabled
	}
	if raw.Watch.Debounce != "" {
		d, err := time.ParseDuration(raw.Watch.Debounce)
		if err != nil {
			return fmt.Errorf("watch.debounce: %w", err)
		}
		cfg.Watch.Debounce = d
	}

	// Log
	if raw.Log.File != "" {
		cfg.Log.File = raw.Log.File
	}
	if raw.Log.Level != "" {
		cfg.Log.Level = raw.Log.Level
	}
	return nil
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
