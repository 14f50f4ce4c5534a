package browser

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestHighlighter_Lines(t *testing.T) {
	h := NewHighlighter("monokai")
	src := "package main\n\nfunc main() {}\n"

	lines := h.Lines("main.go", src)
	if lines == nil {
		t.Fatal("expected highlighted lines for Go source")
	}
	want := splitLines(src)
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if got := ansi.Strip(lines[i]); got != want[i] {
			t.Errorf("line %d = %q, want %q", i, got, want[i])
		}
	}
	if !strings.Contains(strings.Join(lines, ""), "\x1b[") {
		t.Error("expected ANSI escape sequences in highlighted output")
	}
}

func TestHighlighter_Cache(t *testing.T) {
	h := NewHighlighter("monokai")
	src := "x := 1\n"

	first := h.Lines("a.go", src)
	second := h.Lines("a.go", src)
	if len(first) == 0 || &first[0] != &second[0] {
		t.Error("second call should be served from the cache")
	}
	if len(h.cache) != 1 {
		t.Errorf("cache has %d entries, want 1", len(h.cache))
	}

	for i := 0; i < maxCachedFiles+1; i++ {
		h.Lines("a.go", src+strings.Repeat("\n", i+1)+"y := 2\n")
	}
	if len(h.cache) > maxCachedFiles {
		t.Errorf("cache grew to %d entries, limit %d", len(h.cache), maxCachedFiles)
	}
}

func TestHighlighter_Skips(t *testing.T) {
	h := NewHighlighter("no-such-style")

	if h.Lines("a.go", "") != nil {
		t.Error("empty text should not be highlighted")
	}
	big := strings.Repeat("a", maxHighlightBytes+1)
	if h.Lines("big.go", big) != nil {
		t.Error("oversized text should not be highlighted")
	}

	var nilHighlighter *Highlighter
	if nilHighlighter.Lines("a.go", "package a") != nil {
		t.Error("nil highlighter should return nil")
	}
}
