package styles

import (
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects themeRegistry and currentTheme.
var themeMu sync.RWMutex

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds all theme colors
type ColorPalette struct {
	Secondary string `json:"secondary" yaml:"secondary"`

	Success string `json:"success" yaml:"success"`
	Error   string `json:"error" yaml:"error"`

	TextPrimary string `json:"textPrimary" yaml:"textPrimary"`
	TextMuted   string `json:"textMuted" yaml:"textMuted"`

	BgTertiary string `json:"bgTertiary" yaml:"bgTertiary"`

	BorderNormal string `json:"borderNormal" yaml:"borderNormal"`
	BorderActive string `json:"borderActive" yaml:"borderActive"`

	SearchText string `json:"searchText" yaml:"searchText"`

	// Chroma style name for highlighted file contents
	SyntaxTheme string `json:"syntaxTheme" yaml:"syntaxTheme"`
}

// Theme is a named palette.
type Theme struct {
	Name   string
	Colors ColorPalette
}

// DefaultTheme is the dark theme the browser starts with.
var DefaultTheme = Theme{
	Name: "default",
	Colors: ColorPalette{
		Secondary:    "#3B82F6",
		Success:      "#10B981",
		Error:        "#EF4444",
		TextPrimary:  "#F9FAFB",
		TextMuted:    "#6B7280",
		BgTertiary:   "#374151",
		BorderNormal: "#374151",
		BorderActive: "#7C3AED",
		SearchText:   "#FACC15",
		SyntaxTheme:  "monokai",
	},
}

// LightTheme suits terminals with a light background.
var LightTheme = Theme{
	Name: "light",
	Colors: ColorPalette{
		Secondary:    "#1D4ED8",
		Success:      "#047857",
		Error:        "#B91C1C",
		TextPrimary:  "#111827",
		TextMuted:    "#6B7280",
		BgTertiary:   "#E5E7EB",
		BorderNormal: "#D1D5DB",
		BorderActive: "#6D28D9",
		SearchText:   "#A16207",
		SyntaxTheme:  "github",
	},
}

var themeRegistry = map[string]Theme{
	DefaultTheme.Name: DefaultTheme,
	LightTheme.Name:   LightTheme,
}

// currentTheme tracks the active theme name
var currentTheme = "default"

// IsValidHexColor checks if a string is a valid hex color code (#RRGGBB or #RRGGBBAA)
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return DefaultTheme
}

// GetCurrentThemeName returns the name of the currently active theme
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the names of all available themes in sorted order
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTheme applies a theme by name, updating all style variables.
// Unknown names fall back to the default theme.
func ApplyTheme(name string) {
	theme := GetTheme(name)
	ApplyThemeColors(theme)
	themeMu.Lock()
	currentTheme = theme.Name
	themeMu.Unlock()
}

// ApplyThemeColors updates the palette variables from theme and rebuilds
// every style that depends on them. Colors that are not valid hex codes keep
// their current value.
func ApplyThemeColors(theme Theme) {
	c := theme.Colors

	set := func(dst *lipgloss.Color, hex string) {
		if IsValidHexColor(hex) {
			*dst = lipgloss.Color(hex)
		}
	}
	set(&Secondary, c.Secondary)
	set(&Success, c.Success)
	set(&Error, c.Error)
	set(&TextPrimary, c.TextPrimary)
	set(&TextMuted, c.TextMuted)
	set(&BgTertiary, c.BgTertiary)
	set(&BorderNormal, c.BorderNormal)
	set(&BorderActive, c.BorderActive)
	set(&SearchText, c.SearchText)

	if c.SyntaxTheme != "" {
		CurrentSyntaxTheme = c.SyntaxTheme
	}

	rebuildStyles()
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	PanelActive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(0, 1)

	PanelInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	SearchInput = lipgloss.NewStyle().
		Foreground(SearchText)

	StatusOK = lipgloss.NewStyle().
		Foreground(Success)

	StatusError = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary)

	FileBrowserDir = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	FileBrowserFile = lipgloss.NewStyle().
		Foreground(TextPrimary)
}
