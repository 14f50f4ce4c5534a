// Package keymap maps named browser commands to key bindings.
package keymap

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
)

// Command identifies an action a key can trigger.
type Command string

const (
	CmdQuit         Command = "quit"
	CmdDown         Command = "cursor-down"
	CmdUp           Command = "cursor-up"
	CmdToggleHidden Command = "toggle-hidden"
	CmdConfirm      Command = "confirm"
	CmdYank         Command = "yank-path"
	CmdCancel       Command = "cancel"
	CmdErase        Command = "erase"
)

// Binding is a default key assignment for a command.
type Binding struct {
	Keys    []string
	Command Command
	Help    string
}

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Navigation
		{Keys: []string{"q"}, Command: CmdQuit, Help: "quit"},
		{Keys: []string{"down", "j"}, Command: CmdDown, Help: "down"},
		{Keys: []string{"up", "k"}, Command: CmdUp, Help: "up"},
		{Keys: []string{"h"}, Command: CmdToggleHidden, Help: "hidden"},
		{Keys: []string{"enter"}, Command: CmdConfirm, Help: "search"},
		{Keys: []string{"y"}, Command: CmdYank, Help: "copy path"},

		// Search overlay
		{Keys: []string{"esc"}, Command: CmdCancel, Help: "close"},
		{Keys: []string{"backspace"}, Command: CmdErase, Help: "erase"},
	}
}

// KeyMap holds the resolved bindings for every command.
type KeyMap struct {
	Quit         key.Binding
	Down         key.Binding
	Up           key.Binding
	ToggleHidden key.Binding
	Confirm      key.Binding
	Yank         key.Binding
	Cancel       key.Binding
	Erase        key.Binding
}

// Default returns the key map built from DefaultBindings.
func Default() KeyMap {
	km, _ := New(nil)
	return km
}

// New builds a key map from the defaults plus user overrides. Overrides map a
// key to a command ID (e.g. {"H": "toggle-hidden"}). A command that appears in
// any override loses its default keys, and an overridden key is removed from
// every other command so each key triggers exactly one command.
func New(overrides map[string]string) (KeyMap, error) {
	keys := make(map[Command][]string)
	help := make(map[Command]string)
	for _, b := range DefaultBindings() {
		keys[b.Command] = append([]string(nil), b.Keys...)
		help[b.Command] = b.Help
	}

	if len(overrides) > 0 {
		// Deterministic order so the help text is stable.
		ks := make([]string, 0, len(overrides))
		for k := range overrides {
			ks = append(ks, k)
		}
		sort.Strings(ks)

		assigned := make(map[Command][]string)
		for _, k := range ks {
			cmd := Command(overrides[k])
			if _, ok := help[cmd]; !ok {
				return KeyMap{}, fmt.Errorf("keymap: unknown command %q for key %q", cmd, k)
			}
			if (cmd == CmdCancel || cmd == CmdErase) && isPrintable(k) {
				return KeyMap{}, fmt.Errorf("keymap: %q cannot be bound to %s, it must stay typeable in the search box", k, cmd)
			}
			assigned[cmd] = append(assigned[cmd], k)
		}

		for cmd, current := range keys {
			if own, ok := assigned[cmd]; ok {
				keys[cmd] = own
				continue
			}
			kept := current[:0]
			for _, k := range current {
				if _, claimed := overrides[k]; !claimed {
					kept = append(kept, k)
				}
			}
			keys[cmd] = kept
		}

		if len(keys[CmdCancel]) == 0 {
			return KeyMap{}, fmt.Errorf("keymap: no key left for %s", CmdCancel)
		}
	}

	bind := func(cmd Command) key.Binding {
		opts := []key.BindingOpt{
			key.WithKeys(keys[cmd]...),
			key.WithHelp(helpKey(keys[cmd]), help[cmd]),
		}
		if len(keys[cmd]) == 0 {
			opts = append(opts, key.WithDisabled())
		}
		return key.NewBinding(opts...)
	}

	return KeyMap{
		Quit:         bind(CmdQuit),
		Down:         bind(CmdDown),
		Up:           bind(CmdUp),
		ToggleHidden: bind(CmdToggleHidden),
		Confirm:      bind(CmdConfirm),
		Yank:         bind(CmdYank),
		Cancel:       bind(CmdCancel),
		Erase:        bind(CmdErase),
	}, nil
}

// NavigationHelp returns the bindings shown in the footer while browsing.
func (k KeyMap) NavigationHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.ToggleHidden, k.Confirm, k.Yank, k.Quit}
}

// OverlayHelp returns the bindings shown in the footer while the search
// overlay is open.
func (k KeyMap) OverlayHelp() []key.Binding {
	return []key.Binding{k.Erase, k.Cancel}
}

// isPrintable reports whether k names a single printable character, which the
// search box would otherwise insert as text.
func isPrintable(k string) bool {
	r := []rune(k)
	return len(r) == 1 && unicode.IsPrint(r[0])
}

var keySymbols = map[string]string{
	"down": "↓",
	"up":   "↑",
}

func helpKey(keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if sym, ok := keySymbols[k]; ok {
			k = sym
		}
		parts = append(parts, k)
	}
	return strings.Join(parts, "/")
}
