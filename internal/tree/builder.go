// Package tree flattens a directory hierarchy into a depth-annotated,
// pre-order list of entries suitable for index-based navigation.
package tree

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gobwas/glob"
)

// HiddenPrefix marks entries excluded from the walk unless hidden files are shown.
const HiddenPrefix = "."

// Entry is one filesystem entry in the flattened view.
type Entry struct {
	Path  string
	IsDir bool
	Depth int // ancestors between the entry and the walk root
}

// Name returns the final path element.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// IsHidden reports whether name carries the hidden-file marker.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, HiddenPrefix)
}

// Build walks root and returns its entries in pre-order, children sorted by
// name. An unreadable or missing root yields an empty slice.
func Build(root string, showHidden bool) []Entry {
	return NewBuilder(nil, nil).Build(root, showHidden)
}

// Builder walks directory trees with an optional set of ignore globs.
type Builder struct {
	ignore []glob.Glob
	logger *slog.Logger
}

// NewBuilder compiles the ignore patterns. Patterns are matched against the
// entry name and against its slash-separated path relative to the root.
// Patterns that fail to compile are logged and dropped.
func NewBuilder(patterns []string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := &Builder{logger: logger}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			logger.Warn("ignoring invalid pattern", "pattern", p, "err", err)
			continue
		}
		b.ignore = append(b.ignore, g)
	}
	return b
}

// Build walks root the same way as the package-level Build, additionally
// dropping entries (and their subtrees) that match an ignore pattern.
func (b *Builder) Build(root string, showHidden bool) []Entry {
	root = filepath.Clean(root)
	entries := make([]Entry, 0, 64)
	return b.walk(root, root, 0, showHidden, entries)
}

func (b *Builder) walk(root, dir string, depth int, showHidden bool, out []Entry) []Entry {
	children, err := listDir(dir)
	if err != nil {
		b.logger.Debug("skipping unreadable directory", "path", dir, "err", err)
		return out
	}

	for _, c := range children {
		if !showHidden && IsHidden(c.name) {
			continue
		}
		if b.ignored(root, c) {
			continue
		}
		out = append(out, Entry{Path: c.path, IsDir: c.isDir, Depth: depth})
		// Symlinked directories are listed but not entered, so a link back to
		// an ancestor cannot loop.
		if c.isDir && !c.symlink {
			out = b.walk(root, c.path, depth+1, showHidden, out)
		}
	}
	return out
}

func (b *Builder) ignored(root string, c dirent) bool {
	if len(b.ignore) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, c.path)
	if err != nil {
		rel = c.name
	}
	rel = filepath.ToSlash(rel)
	for _, g := range b.ignore {
		if g.Match(c.name) || g.Match(rel) {
			return true
		}
	}
	return false
}

type dirent struct {
	name    string
	path    string
	isDir   bool
	symlink bool
}

// listDir returns the direct children of dir sorted by name (byte order).
// Entries that cannot be stat'ed are skipped.
func listDir(dir string) ([]dirent, error) {
	var (
		mu  sync.Mutex
		out []dirent
	)

	conf := &fastwalk.Config{Follow: false}
	err := fastwalk.Walk(conf, dir, func(path string, d fs.DirEntry, err error) error {
		if filepath.Clean(path) == dir {
			// Propagate a failure to read the directory itself.
			return err
		}
		if err != nil || d == nil {
			return nil
		}

		ent := dirent{name: d.Name(), path: filepath.Join(dir, d.Name()), isDir: d.IsDir()}
		if d.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(ent.path)
			if statErr != nil {
				return nil
			}
			ent.symlink = true
			ent.isDir = info.IsDir()
		}

		mu.Lock()
		out = append(out, ent)
		mu.Unlock()

		// One level only; the builder recurses itself to keep ordering.
		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out, nil
}
