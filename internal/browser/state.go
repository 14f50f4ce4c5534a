package browser

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/marcus/fbrowse/internal/tree"
)

// UnreadableText replaces the contents of files that cannot be read or are
// not valid UTF-8.
const UnreadableText = "Unable to read file contents"

// Mode selects how key events are interpreted.
type Mode int

const (
	ModeNavigation Mode = iota
	ModeSearchOverlay
)

func (m Mode) String() string {
	switch m {
	case ModeNavigation:
		return "navigation"
	case ModeSearchOverlay:
		return "search"
	}
	return "unknown"
}

// Direction is a one-step selection move.
type Direction int

const (
	Next Direction = iota
	Previous
)

// OverlayOp is the kind of edit applied to the search buffer.
type OverlayOp int

const (
	OverlayInsert OverlayOp = iota
	OverlayErase
	OverlayCommit
)

// OverlayEvent is one edit of the search buffer.
type OverlayEvent struct {
	Op   OverlayOp
	Rune rune // OverlayInsert only
}

// Insert returns an event appending r to the search buffer.
func Insert(r rune) OverlayEvent { return OverlayEvent{Op: OverlayInsert, Rune: r} }

// Erase returns an event removing the last rune of the search buffer.
func Erase() OverlayEvent { return OverlayEvent{Op: OverlayErase} }

// Commit returns the reserved submit event. It has no effect.
func Commit() OverlayEvent { return OverlayEvent{Op: OverlayCommit} }

// State is the whole browser state. It is owned by Model and mutated only
// from Update.
type State struct {
	Root         string
	Entries      []tree.Entry
	Selected     int
	ShowHidden   bool
	Contents     *string // nil when nothing is loaded
	ScrollOffset int
	Mode         Mode
	SearchBuffer string

	builder *tree.Builder
	logger  *slog.Logger
}

// NewState returns an empty state that walks trees with builder.
func NewState(builder *tree.Builder, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if builder == nil {
		builder = tree.NewBuilder(nil, logger)
	}
	return &State{builder: builder, logger: logger}
}

// Initialize walks root (or the working directory when root is empty) and
// resets every field to its starting value.
func (s *State) Initialize(root string) {
	s.Root = resolveRoot(root, s.logger)
	s.ShowHidden = false
	s.Entries = s.builder.Build(s.Root, s.ShowHidden)
	s.Selected = 0
	s.Contents = nil
	s.ScrollOffset = 0
	s.Mode = ModeNavigation
	s.SearchBuffer = ""
	s.logger.Debug("tree built", "root", s.Root, "entries", len(s.Entries))
}

func resolveRoot(root string, logger *slog.Logger) string {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			logger.Warn("cannot determine working directory", "err", err)
			return string(filepath.Separator)
		}
		root = wd
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return root
}

// Selection returns the selected entry, if any.
func (s *State) Selection() (tree.Entry, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Entries) {
		return tree.Entry{}, false
	}
	return s.Entries[s.Selected], true
}

// MoveSelection moves the selection one step, clamped to the list bounds.
// On a move it loads the new entry's contents and resets scrolling. It
// reports whether the selection changed.
func (s *State) MoveSelection(dir Direction) bool {
	if len(s.Entries) == 0 {
		return false
	}
	next := s.Selected
	switch dir {
	case Next:
		if next < len(s.Entries)-1 {
			next++
		}
	case Previous:
		if next > 0 {
			next--
		}
	}
	if next == s.Selected {
		return false
	}
	s.Selected = next
	s.LoadSelectedContents()
	s.ScrollOffset = 0
	return true
}

// LoadSelectedContents reads the selected file into Contents. Directories and
// an empty selection clear Contents.
func (s *State) LoadSelectedContents() {
	e, ok := s.Selection()
	if !ok || e.IsDir {
		s.Contents = nil
		return
	}
	text := readText(e.Path, s.logger)
	s.Contents = &text
}

func readText(path string, logger *slog.Logger) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("read failed", "path", path, "err", err)
		return UnreadableText
	}
	if !utf8.Valid(data) {
		return UnreadableText
	}
	return string(data)
}

// ToggleHidden flips hidden-file visibility and rebuilds the tree from Root.
// The selection returns to the first entry and Contents is cleared.
func (s *State) ToggleHidden() {
	s.ShowHidden = !s.ShowHidden
	s.Entries = s.builder.Build(s.Root, s.ShowHidden)
	s.Selected = 0
	s.Contents = nil
	s.ScrollOffset = 0
}

// Refresh rebuilds the tree after an external change. The selection follows
// its path when it still exists; otherwise the index is clamped.
func (s *State) Refresh() {
	prev, hadSel := s.Selection()
	hadContents := s.Contents != nil

	s.Entries = s.builder.Build(s.Root, s.ShowHidden)

	if hadSel {
		for i, e := range s.Entries {
			if e.Path == prev.Path {
				s.Selected = i
				if hadContents {
					s.LoadSelectedContents()
					s.clampScroll()
				}
				return
			}
		}
	}

	switch {
	case len(s.Entries) == 0:
		s.Selected = 0
	case s.Selected >= len(s.Entries):
		s.Selected = len(s.Entries) - 1
	}
	s.ScrollOffset = 0
	if hadContents {
		s.LoadSelectedContents()
	}
}

// OpenOverlay switches to search-overlay mode.
func (s *State) OpenOverlay() {
	s.Mode = ModeSearchOverlay
}

// CloseOverlay returns to navigation mode. The search buffer is kept.
func (s *State) CloseOverlay() {
	s.Mode = ModeNavigation
}

// OverlayActive reports whether the search overlay is open.
func (s *State) OverlayActive() bool {
	return s.Mode == ModeSearchOverlay
}

// OverlayInput applies ev to the search buffer. It does nothing outside
// overlay mode.
func (s *State) OverlayInput(ev OverlayEvent) {
	if s.Mode != ModeSearchOverlay {
		return
	}
	switch ev.Op {
	case OverlayInsert:
		s.SearchBuffer += string(ev.Rune)
	case OverlayErase:
		if s.SearchBuffer == "" {
			return
		}
		_, size := utf8.DecodeLastRuneInString(s.SearchBuffer)
		s.SearchBuffer = s.SearchBuffer[:len(s.SearchBuffer)-size]
	case OverlayCommit:
		// Searching is not implemented; submit is accepted and ignored.
	}
}

// ScrollContents moves the contents view by delta lines, keeping at least
// one line visible.
func (s *State) ScrollContents(delta int) {
	if s.Contents == nil {
		return
	}
	s.ScrollOffset += delta
	s.clampScroll()
}

func (s *State) clampScroll() {
	if s.Contents == nil {
		s.ScrollOffset = 0
		return
	}
	maxOffset := len(splitLines(*s.Contents)) - 1
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

// splitLines splits text into display lines. A trailing newline does not
// start an extra empty line.
func splitLines(text string) []string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return strings.Split(text, "\n")
}
