package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/fbrowse/internal/config"
)

func TestRootCmd_Version(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "fbrowse version ") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()
	// cobra adds --version lazily on Execute.
	cmd.InitDefaultVersionFlag()
	for _, name := range []string{"config", "debug", "log-file", "watch", "no-highlight", "version"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
}

func TestRootCmd_TooManyArgs(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"a", "b"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for two paths")
	}
}

func TestRootCmd_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"log": {"level": "loud"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--config", path})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Errorf("err = %v, want a config error", err)
	}
}

func TestRootCmd_UnknownKeymapCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"keymap": {"overrides": {"x": "explode"}}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--config", path})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "explode") {
		t.Errorf("err = %v, want a keymap error", err)
	}
}

func TestRootCmd_RequiresTerminal(t *testing.T) {
	// Test binaries run with stdout attached to a pipe.
	path := filepath.Join(t.TempDir(), "missing.json")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--config", path, t.TempDir()})
	if err := cmd.Execute(); !errors.Is(err, errNotTerminal) {
		t.Skipf("stdout appears to be a terminal (err = %v)", err)
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := NewRootCmd()
	if err := cmd.Flags().Parse([]string{"--debug", "--log-file", "/tmp/x.log", "--watch", "--no-highlight"}); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	applyFlags(cmd, cfg, rootOptions{debug: true, logFile: "/tmp/x.log", watch: true, noHighlight: true})

	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/x.log" {
		t.Errorf("log config = %+v", cfg.Log)
	}
	if !cfg.Watch.Enabled || cfg.UI.Highlight {
		t.Errorf("watch=%v highlight=%v", cfg.Watch.Enabled, cfg.UI.Highlight)
	}

	// An unset --watch leaves the config file's value alone.
	cmd = NewRootCmd()
	cfg = config.Default()
	cfg.Watch.Enabled = true
	applyFlags(cmd, cfg, rootOptions{})
	if !cfg.Watch.Enabled {
		t.Error("watch should keep the config value when the flag is not given")
	}
}

func TestNewLogger(t *testing.T) {
	logger, closeLog, err := newLogger(config.LogConfig{})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("discarded")
	if err := closeLog(); err != nil {
		t.Errorf("close: %v", err)
	}

	path := filepath.Join(t.TempDir(), "logs", "fbrowse.log")
	logger, closeLog, err = newLogger(config.LogConfig{File: path, Level: "warn"})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	if err := closeLog(); err != nil {
		t.Errorf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "msg=shown key=value") {
		t.Errorf("log contents = %q", data)
	}

	if _, _, err := newLogger(config.LogConfig{Level: "loud"}); err == nil {
		t.Error("expected error for an invalid level")
	}
}

func TestEffectiveVersion(t *testing.T) {
	if got := effectiveVersion("v1.2.3"); got != "v1.2.3" {
		t.Errorf("effectiveVersion = %q", got)
	}
	if got := effectiveVersion(""); got == "" {
		t.Error("fallback version should not be empty")
	}
	if got := shortRevision("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("shortRevision = %q", got)
	}
}
