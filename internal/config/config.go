package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/marcus/fbrowse/internal/styles"
)

// DefaultDebounce is the quiet period the watcher waits for before refreshing.
const DefaultDebounce = 200 * time.Millisecond

// Config is the root configuration structure.
type Config struct {
	Browser BrowserConfig `json:"browser" yaml:"browser"`
	UI      UIConfig      `json:"ui" yaml:"ui"`
	Keymap  KeymapConfig  `json:"keymap" yaml:"keymap"`
	Watch   WatchConfig   `json:"watch" yaml:"watch"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// BrowserConfig configures which tree is walked.
type BrowserConfig struct {
	Root   string   `json:"root" yaml:"root"`     // "" = current directory
	Ignore []string `json:"ignore" yaml:"ignore"` // glob patterns matched against name and relative path
}

// UIConfig configures UI appearance.
type UIConfig struct {
	Theme       string `json:"theme" yaml:"theme"`
	Highlight   bool   `json:"highlight" yaml:"highlight"`
	SyntaxTheme string `json:"syntaxTheme" yaml:"syntaxTheme"` // "" = theme default
}

// KeymapConfig holds key binding overrides, keyed by key.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides" yaml:"overrides"`
}

// WatchConfig configures the filesystem watcher.
type WatchConfig struct {
	Enabled  bool          `json:"enabled" yaml:"enabled"`
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}

// LogConfig configures the log sink. The terminal belongs to the UI, so
// nothing is logged unless File is set.
type LogConfig struct {
	File  string `json:"file" yaml:"file"`
	Level string `json:"level" yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Theme:     "default",
			Highlight: true,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for errors. Out-of-range durations are
// corrected in place.
func (c *Config) Validate() error {
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = DefaultDebounce
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "default"
	}
	if !styles.IsValidTheme(c.UI.Theme) {
		return fmt.Errorf("ui.theme: unknown theme %q (available: %s)", c.UI.Theme, strings.Join(styles.ListThemes(), ", "))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	for _, p := range c.Browser.Ignore {
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("browser.ignore: invalid pattern %q: %w", p, err)
		}
	}
	return nil
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a
// slog level. The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}
