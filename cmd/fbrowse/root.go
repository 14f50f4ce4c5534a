package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/fbrowse/internal/browser"
	"github.com/marcus/fbrowse/internal/config"
	"github.com/marcus/fbrowse/internal/keymap"
	"github.com/marcus/fbrowse/internal/styles"
)

var errNotTerminal = errors.New("stdout is not a terminal")

type rootOptions struct {
	configPath  string
	debug       bool
	logFile     string
	watch       bool
	noHighlight bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "fbrowse [path]",
		Short: "Browse a directory tree and preview files in the terminal",
		Long: `fbrowse lists a directory tree on the left and the selected file on the right.

Keys: j/k or arrows move, h toggles hidden files, y copies the selected path,
enter opens the search box, esc closes it, q quits.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       effectiveVersion(Version),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.SetVersionTemplate("fbrowse version {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/fbrowse/config.json)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&opts.watch, "watch", false, "refresh the tree when files change")
	flags.BoolVar(&opts.noHighlight, "no-highlight", false, "disable syntax highlighting")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts rootOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg, opts)

	keys, err := keymap.New(cfg.Keymap.Overrides)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	root := cfg.Browser.Root
	if len(args) == 1 {
		root = args[0]
	}
	if root != "" {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			logger.Warn("start path is not a readable directory", "path", root)
		}
	}

	styles.ApplyTheme(cfg.UI.Theme)

	model := browser.New(browser.Options{
		Root:        root,
		Ignore:      cfg.Browser.Ignore,
		Keys:        keys,
		Highlight:   cfg.UI.Highlight,
		SyntaxTheme: cfg.UI.SyntaxTheme,
		Watch:       cfg.Watch.Enabled,
		Debounce:    cfg.Watch.Debounce,
		Logger:      logger,
	})
	defer model.Close()

	logger.Info("starting",
		"version", effectiveVersion(Version),
		"root", model.State().Root,
		"theme", styles.GetCurrentThemeName())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// applyFlags lets command-line flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts rootOptions) {
	if opts.debug {
		cfg.Log.Level = "debug"
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch.Enabled = opts.watch
	}
	if opts.noHighlight {
		cfg.UI.Highlight = false
	}
}

// newLogger returns a text logger writing to cfg.File, or a logger that
// discards everything when no file is configured. The terminal is owned by
// the UI while it runs.
func newLogger(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, f.Close, nil
}
