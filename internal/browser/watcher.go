package browser

import (
	"io"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/marcus/fbrowse/internal/tree"
)

// RefreshMsg tells the model the watched tree changed on disk.
type RefreshMsg struct{}

// Watcher reports debounced filesystem changes under a set of directories.
// It never touches State; changes are delivered as RefreshMsg.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger

	events    chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	timer   *time.Timer
	watched map[string]bool
}

// NewWatcher starts a watcher with no directories.
func NewWatcher(debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		logger:   logger,
		events:   make(chan struct{}, 1),
		done:     make(chan struct{}),
		watched:  make(map[string]bool),
	}
	go w.run()
	return w, nil
}

// Watch replaces the watched set with dirs. Directories that cannot be
// watched are logged and skipped.
func (w *Watcher) Watch(dirs []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	want := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		want[d] = true
	}
	for d := range w.watched {
		if !want[d] {
			_ = w.fsw.Remove(d)
			delete(w.watched, d)
		}
	}
	for d := range want {
		if w.watched[d] {
			continue
		}
		if err := w.fsw.Add(d); err != nil {
			w.logger.Debug("watch failed", "path", d, "err", err)
			continue
		}
		w.watched[d] = true
	}
}

// Events returns the channel that receives one value per debounced burst of
// changes. It is never closed.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Listen returns a command that blocks until the next change and yields
// RefreshMsg, or nil once the watcher is closed.
func (w *Watcher) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.events:
			return RefreshMsg{}
		case <-w.done:
			return nil
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// Permission and timestamp changes do not alter the listing.
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.schedule()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.notify)
}

func (w *Watcher) notify() {
	select {
	case <-w.done:
	case w.events <- struct{}{}:
	default:
		// A refresh is already pending.
	}
}

// WatchDirs returns root plus every directory in entries.
func WatchDirs(root string, entries []tree.Entry) []string {
	dirs := []string{root}
	for _, e := range entries {
		if e.IsDir {
			dirs = append(dirs, e.Path)
		}
	}
	return dirs
}
