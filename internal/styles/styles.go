package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - default dark theme
var (
	// Directory names
	Secondary = lipgloss.Color("#3B82F6") // Blue

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Error   = lipgloss.Color("#EF4444") // Red

	// Text colors
	TextPrimary = lipgloss.Color("#F9FAFB")
	TextMuted   = lipgloss.Color("#6B7280")

	// Background colors
	BgTertiary = lipgloss.Color("#374151")

	// Border colors
	BorderNormal = lipgloss.Color("#374151")
	BorderActive = lipgloss.Color("#7C3AED")

	// Search input foreground
	SearchText = lipgloss.Color("#FACC15") // Yellow

	// Chroma style name used for file contents (updated by ApplyTheme)
	CurrentSyntaxTheme = "monokai"
)

// Panel styles
var (
	// Active panel with highlighted border
	PanelActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderActive).
			Padding(0, 1)

	// Inactive panel with subtle border
	PanelInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderNormal).
			Padding(0, 1)
)

// Text styles
var (
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
)

// List item styles
var (
	ListItemSelected = lipgloss.NewStyle().
				Foreground(TextPrimary).
				Background(BgTertiary)

	FileBrowserDir = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	FileBrowserFile = lipgloss.NewStyle().
			Foreground(TextPrimary)
)

// RenderPanel draws content inside a bordered box whose outer size is exactly
// width x height. The title occupies the first inner row; content beyond the
// remaining rows is cut.
func RenderPanel(title, content string, width, height int, active bool) string {
	if width < 2 || height < 2 {
		return ""
	}
	style := PanelInactive
	if active {
		style = PanelActive
	}

	rows := height - 2
	lines := make([]string, 0, rows)
	if title != "" && rows > 0 {
		lines = append(lines, Title.Render(title))
	}
	if content != "" {
		for _, l := range strings.Split(content, "\n") {
			if len(lines) >= rows {
				break
			}
			lines = append(lines, l)
		}
	}

	return style.
		Width(width - 2).
		Height(rows).
		MaxWidth(width).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

// InnerSize returns the content area of a panel of the given outer size,
// excluding the border, horizontal padding and title row.
func InnerSize(width, height int) (int, int) {
	w := width - 4
	h := height - 3
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}
