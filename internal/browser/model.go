// Package browser implements the interactive file browser: its state, key
// handling, rendering and the bubbletea model that ties them together.
package browser

import (
	"io"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/fbrowse/internal/keymap"
	"github.com/marcus/fbrowse/internal/styles"
	"github.com/marcus/fbrowse/internal/tree"
)

const wheelStep = 3

// Options configures a Model.
type Options struct {
	Root        string   // "" = working directory
	Ignore      []string // glob patterns excluded from the tree
	Keys        keymap.KeyMap
	Highlight   bool
	SyntaxTheme string // "" = styles.CurrentSyntaxTheme
	Watch       bool
	Debounce    time.Duration
	Logger      *slog.Logger
}

// Message types for tea.Cmd
type (
	// ToastMsg shows a temporary status message in the footer.
	ToastMsg struct {
		Message  string
		Duration time.Duration
		IsError  bool
	}

	clearToastMsg struct{ seq int }
)

// Model is the bubbletea model for the browser.
type Model struct {
	state      *State
	dispatcher *Dispatcher
	renderer   *Renderer
	watcher    *Watcher
	logger     *slog.Logger

	// copyText writes to the system clipboard.
	copyText func(string) error

	width  int
	height int

	toast        string
	toastIsError bool
	toastSeq     int
}

// New builds the tree for opts.Root and returns a ready model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	keys := opts.Keys
	if len(keys.Quit.Keys()) == 0 {
		keys = keymap.Default()
	}

	var hl *Highlighter
	if opts.Highlight {
		theme := opts.SyntaxTheme
		if theme == "" {
			theme = styles.CurrentSyntaxTheme
		}
		hl = NewHighlighter(theme)
	}

	state := NewState(tree.NewBuilder(opts.Ignore, logger), logger)
	state.Initialize(opts.Root)

	m := Model{
		state:      state,
		dispatcher: NewDispatcher(keys),
		renderer:   NewRenderer(keys, hl),
		logger:     logger,
		copyText:   clipboard.WriteAll,
	}

	if opts.Watch {
		w, err := NewWatcher(opts.Debounce, logger)
		if err != nil {
			logger.Warn("file watching disabled", "err", err)
		} else {
			m.watcher = w
			w.Watch(WatchDirs(state.Root, state.Entries))
		}
	}
	return m
}

// State returns the browser state.
func (m Model) State() *State {
	return m.state
}

// Init starts the watcher listener when watching is enabled.
func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Listen()
}

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		if m.state.Mode != ModeNavigation || msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.state.ScrollContents(-wheelStep)
		case tea.MouseButtonWheelDown:
			m.state.ScrollContents(wheelStep)
		}
		return m, nil

	case RefreshMsg:
		m.state.Refresh()
		m.logger.Debug("tree refreshed", "entries", len(m.state.Entries))
		if m.watcher == nil {
			return m, nil
		}
		m.watcher.Watch(WatchDirs(m.state.Root, m.state.Entries))
		return m, m.watcher.Listen()

	case ToastMsg:
		m.toastSeq++
		m.toast = msg.Message
		m.toastIsError = msg.IsError
		seq := m.toastSeq
		return m, tea.Tick(msg.Duration, func(time.Time) tea.Msg {
			return clearToastMsg{seq: seq}
		})

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
			m.toastIsError = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	hidden := m.state.ShowHidden
	action := m.dispatcher.Dispatch(m.state, msg)
	if m.watcher != nil && hidden != m.state.ShowHidden {
		m.watcher.Watch(WatchDirs(m.state.Root, m.state.Entries))
	}

	switch action {
	case ActionQuit:
		return m, tea.Quit
	case ActionYank:
		return m, m.yankPath()
	}
	return m, nil
}

// yankPath copies the selected entry's path to the clipboard.
func (m Model) yankPath() tea.Cmd {
	e, ok := m.state.Selection()
	if !ok {
		return nil
	}
	if err := m.copyText(e.Path); err != nil {
		m.logger.Warn("clipboard write failed", "err", err)
		return showToast("Copy failed: "+err.Error(), 3*time.Second, true)
	}
	return showToast("Copied "+e.Path, 2*time.Second, false)
}

func showToast(msg string, d time.Duration, isError bool) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Message: msg, Duration: d, IsError: isError}
	}
}

// View renders the current frame.
func (m Model) View() string {
	status := ""
	if m.toast != "" {
		if m.toastIsError {
			status = styles.StatusError.Render(m.toast)
		} else {
			status = styles.StatusOK.Render(m.toast)
		}
	}
	return m.renderer.Render(m.state, m.width, m.height, status)
}

// Close releases the watcher, if any.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}
