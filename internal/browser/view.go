package browser

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/fbrowse/internal/keymap"
	"github.com/marcus/fbrowse/internal/styles"
)

const (
	treeTitle     = " Directory Tree "
	contentsTitle = " File Contents "
	searchTitle   = " Search "

	noFilesText   = "No files"
	noContentText = "Select a file to view contents"

	tabWidth = 4
)

// Renderer draws a State. It never modifies the state it is given.
type Renderer struct {
	keys        keymap.KeyMap
	help        help.Model
	highlighter *Highlighter // nil disables highlighting
}

// NewRenderer returns a renderer. A nil highlighter renders contents as
// plain text.
func NewRenderer(keys keymap.KeyMap, hl *Highlighter) *Renderer {
	h := help.New()
	h.ShortSeparator = "  "
	return &Renderer{keys: keys, help: h, highlighter: hl}
}

// Layout returns the column widths for a terminal of the given width: 40:60
// while navigating, 33:33:34 with the search overlay open. The last column
// takes any rounding remainder.
func Layout(width int, overlay bool) []int {
	if width < 0 {
		width = 0
	}
	if overlay {
		a := width * 33 / 100
		b := width * 33 / 100
		return []int{a, b, width - a - b}
	}
	a := width * 40 / 100
	return []int{a, width - a}
}

// Render draws the panes and the footer into a width x height block. status
// is shown verbatim at the start of the footer.
func (r *Renderer) Render(s *State, width, height int, status string) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	footer := r.renderFooter(s, width, status)
	bodyHeight := height - 1
	if bodyHeight < 2 {
		return footer
	}

	overlay := s.OverlayActive()
	cols := Layout(width, overlay)
	panes := []string{
		styles.RenderPanel(treeTitle, r.renderTree(s, cols[0], bodyHeight), cols[0], bodyHeight, !overlay),
		styles.RenderPanel(contentsTitle, r.renderContents(s, cols[1], bodyHeight), cols[1], bodyHeight, false),
	}
	if overlay {
		panes = append(panes, styles.RenderPanel(searchTitle, r.renderSearch(s, cols[2]), cols[2], bodyHeight, true))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// treeWindow returns the first visible row so that selected is on screen.
func treeWindow(selected, rows int) int {
	if rows <= 0 || selected < rows {
		return 0
	}
	return selected - rows + 1
}

func (r *Renderer) renderTree(s *State, width, height int) string {
	innerW, innerH := styles.InnerSize(width, height)
	if innerW == 0 || innerH == 0 {
		return ""
	}
	if len(s.Entries) == 0 {
		return styles.Muted.Render(runewidth.Truncate(noFilesText, innerW, ""))
	}

	start := treeWindow(s.Selected, innerH)
	end := min(start+innerH, len(s.Entries))

	var sb strings.Builder
	for i := start; i < end; i++ {
		e := s.Entries[i]
		name := e.Name()
		if e.IsDir {
			name += "/"
		}
		line := runewidth.Truncate(strings.Repeat("  ", e.Depth)+name, innerW, "…")

		switch {
		case i == s.Selected:
			sb.WriteString(styles.ListItemSelected.Render(runewidth.FillRight(line, innerW)))
		case e.IsDir:
			sb.WriteString(styles.FileBrowserDir.Render(line))
		default:
			sb.WriteString(styles.FileBrowserFile.Render(line))
		}
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (r *Renderer) renderContents(s *State, width, height int) string {
	innerW, innerH := styles.InnerSize(width, height)
	if innerW == 0 || innerH == 0 {
		return ""
	}
	if s.Contents == nil {
		return styles.Muted.Render(ansi.Truncate(noContentText, innerW, ""))
	}

	text := strings.ReplaceAll(*s.Contents, "\t", strings.Repeat(" ", tabWidth))
	lines := splitLines(text)
	if *s.Contents != UnreadableText {
		if e, ok := s.Selection(); ok {
			if hl := r.highlighter.Lines(e.Path, text); hl != nil {
				lines = hl
			}
		}
	}

	start := min(max(s.ScrollOffset, 0), len(lines))
	end := min(start+innerH, len(lines))
	visible := make([]string, 0, end-start)
	for _, l := range lines[start:end] {
		visible = append(visible, ansi.Truncate(l, innerW, ""))
	}

	vp := viewport.New(innerW, innerH)
	vp.SetContent(strings.Join(visible, "\n"))
	return vp.View()
}

func (r *Renderer) renderSearch(s *State, width int) string {
	innerW, _ := styles.InnerSize(width, 3)
	if innerW == 0 {
		return ""
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = max(innerW-1, 1)
	ti.TextStyle = styles.SearchInput
	ti.Cursor.Style = styles.SearchInput
	ti.SetValue(s.SearchBuffer)
	ti.Focus()
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.CursorEnd()
	return ti.View()
}

func (r *Renderer) renderFooter(s *State, width int, status string) string {
	bindings := r.keys.NavigationHelp()
	if s.OverlayActive() {
		bindings = r.keys.OverlayHelp()
	}
	h := r.help
	h.Width = width
	line := h.ShortHelpView(bindings)
	if status != "" {
		line = status + "  " + line
	}
	return ansi.Truncate(line, width, "")
}
