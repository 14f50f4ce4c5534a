package browser

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/cespare/xxhash/v2"
)

const (
	maxHighlightBytes = 256 * 1024
	maxCachedFiles    = 32
)

// Highlighter renders file contents as ANSI-colored lines, one output line
// per input line, memoised by content digest.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
	cache     map[uint64][]string
}

// NewHighlighter returns a highlighter using the named chroma style.
func NewHighlighter(theme string) *Highlighter {
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &Highlighter{
		style:     style,
		formatter: formatter,
		cache:     make(map[uint64][]string),
	}
}

// Lines returns the highlighted lines of text, or nil when the file type is
// unknown, the text is too large, or the result does not line up with the
// plain split.
func (h *Highlighter) Lines(path, text string) []string {
	if h == nil || text == "" || len(text) > maxHighlightBytes {
		return nil
	}

	d := xxhash.New()
	_, _ = d.WriteString(path)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(text)
	sum := d.Sum64()
	if lines, ok := h.cache[sum]; ok {
		return lines
	}

	lines := h.render(path, text)
	if len(h.cache) >= maxCachedFiles {
		h.cache = make(map[uint64][]string)
	}
	h.cache[sum] = lines
	return lines
}

func (h *Highlighter) render(path, text string) []string {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}

	var (
		buf bytes.Buffer
		out []string
	)
	tokenLines := chroma.SplitTokensIntoLines(iterator.Tokens())
	if n := len(tokenLines); n > 0 && emptyLine(tokenLines[n-1]) {
		tokenLines = tokenLines[:n-1]
	}
	for _, line := range tokenLines {
		buf.Reset()
		if err := h.formatter.Format(&buf, h.style, chroma.Literator(line...)); err != nil {
			return nil
		}
		s := strings.ReplaceAll(buf.String(), "\n", "")
		out = append(out, strings.ReplaceAll(s, "\r", ""))
	}

	if len(out) != len(splitLines(text)) {
		return nil
	}
	return out
}

func emptyLine(tokens []chroma.Token) bool {
	for _, t := range tokens {
		if t.Value != "" {
			return false
		}
	}
	return true
}
