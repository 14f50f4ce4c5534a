package browser

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/fbrowse/internal/keymap"
)

// Action is a side effect requested by a key that the state itself cannot
// perform.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionYank
)

// Dispatcher translates key events into state transitions.
type Dispatcher struct {
	keys keymap.KeyMap
}

// NewDispatcher returns a dispatcher using keys.
func NewDispatcher(keys keymap.KeyMap) *Dispatcher {
	return &Dispatcher{keys: keys}
}

// Dispatch applies msg to s according to the current mode.
func (d *Dispatcher) Dispatch(s *State, msg tea.KeyMsg) Action {
	switch s.Mode {
	case ModeNavigation:
		return d.handleNavigationKey(s, msg)
	case ModeSearchOverlay:
		d.handleOverlayKey(s, msg)
	}
	return ActionNone
}

func (d *Dispatcher) handleNavigationKey(s *State, msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, d.keys.Quit):
		return ActionQuit
	case key.Matches(msg, d.keys.Down):
		s.MoveSelection(Next)
	case key.Matches(msg, d.keys.Up):
		s.MoveSelection(Previous)
	case key.Matches(msg, d.keys.ToggleHidden):
		s.ToggleHidden()
	case key.Matches(msg, d.keys.Confirm):
		s.OpenOverlay()
	case key.Matches(msg, d.keys.Yank):
		if _, ok := s.Selection(); ok {
			return ActionYank
		}
	}
	return ActionNone
}

func (d *Dispatcher) handleOverlayKey(s *State, msg tea.KeyMsg) {
	// Printable keys are text here, even when they open the overlay while
	// browsing.
	switch {
	case key.Matches(msg, d.keys.Cancel):
		s.CloseOverlay()
	case key.Matches(msg, d.keys.Erase):
		s.OverlayInput(Erase())
	case msg.Type == tea.KeySpace:
		s.OverlayInput(Insert(' '))
	case msg.Type == tea.KeyRunes && !msg.Alt:
		for _, r := range msg.Runes {
			if unicode.IsPrint(r) {
				s.OverlayInput(Insert(r))
			}
		}
	case key.Matches(msg, d.keys.Confirm):
		s.OverlayInput(Commit())
	}
}
