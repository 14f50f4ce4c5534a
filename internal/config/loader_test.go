package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.UI.Highlight {
		t.Error("highlighting should be enabled by default")
	}
	if cfg.Watch.Enabled {
		t.Error("watcher should be disabled by default")
	}
	if cfg.Watch.Debounce != DefaultDebounce {
		t.Errorf("got debounce %v, want %v", cfg.Watch.Debounce, DefaultDebounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Error("should return default config")
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{
		"browser": {
			"root": "/srv",
			"ignore": ["*.pyc", "node_modules"]
		},
		"ui": {
			"highlight": false
		},
		"keymap": {
			"overrides": {"H": "toggle-hidden"}
		},
		"watch": {
			"enabled": true,
			"debounce": "500ms"
		}
	}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Browser.Root != "/srv" {
		t.Errorf("got root %q, want /srv", cfg.Browser.Root)
	}
	if len(cfg.Browser.Ignore) != 2 {
		t.Errorf("got ignore %v, want 2 patterns", cfg.Browser.Ignore)
	}
	if cfg.UI.Highlight {
		t.Error("highlight should be disabled")
	}
	if cfg.Keymap.Overrides["H"] != "toggle-hidden" {
		t.Errorf("got overrides %v", cfg.Keymap.Overrides)
	}
	if !cfg.Watch.Enabled || cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("got watch %+v, want enabled with 500ms", cfg.Watch)
	}
	// Default values should still be present
	if cfg.UI.Theme != "default" {
		t.Errorf("theme should keep its default, got %q", cfg.UI.Theme)
	}
}

func TestLoadFrom_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
browser:
  ignore:
    - "*.log"
ui:
  theme: light
  syntaxTheme: dracula
log:
  level: debug
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.UI.Theme != "light" || cfg.UI.SyntaxTheme != "dracula" {
		t.Errorf("got ui %+v", cfg.UI)
	}
	if !cfg.UI.Highlight {
		t.Error("highlight should keep its default when unset")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("got level %q, want debug", cfg.Log.Level)
	}
	if len(cfg.Browser.Ignore) != 1 || cfg.Browser.Ignore[0] != "*.log" {
		t.Errorf("got ignore %v", cfg.Browser.Ignore)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"invalid JSON", "config.json", `{invalid`},
		{"invalid YAML", "config.yml", "ui: [unclosed"},
		{"bad debounce", "config.json", `{"watch": {"debounce": "soon"}}`},
		{"bad level", "config.json", `{"log": {"level": "chatty"}}`},
		{"unknown theme", "config.json", `{"ui": {"theme": "neon"}}`},
		{"bad ignore glob", "config.json", `{"browser": {"ignore": ["["]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFrom(path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input  string
		expect string
	}{
		{"~/projects", filepath.Join(home, "projects")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"", ""},
	}

	for _, tc := range tests {
		got := ExpandPath(tc.input)
		if got != tc.expect {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.expect)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Watch.Debounce = -1

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	// Non-positive values should be corrected
	if cfg.Watch.Debounce != DefaultDebounce {
		t.Errorf("got %v, want %v after validation", cfg.Watch.Debounce, DefaultDebounce)
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"", "debug", "INFO", "warn", "error"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
}
