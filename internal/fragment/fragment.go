// Package fragment builds the content units handed to downstream consumers.
//
// A Fragment pairs a file's text with a stable source identifier. Reading is
// best-effort: oversized, binary, or unreadable files are dropped silently so
// one bad file never aborts a batch load.
package fragment

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/fragments/internal/logger"
)

// DefaultMaxSize is the per-file read cap in bytes.
const DefaultMaxSize = 1_000_000

// TreeSource is the fixed suffix identifying the project tree-summary
// fragment. Other tooling relies on this exact string.
const TreeSource = "FILE_TREE"

// Fragment is one immutable unit of loaded text.
type Fragment struct {
	// Content is the file text, prefixed with a one-line path banner.
	Content string

	// Source identifies where the content came from, in the form
	// "<mode>:<root>/<relative-path>".
	Source string
}

// Builder reads selected files and wraps them into fragments.
type Builder struct {
	// MaxSize caps the largest single file read. Zero means DefaultMaxSize.
	MaxSize int64

	// Logger receives diagnostics for skipped files. Nil disables logging.
	Logger logger.Logger
}

// ReadFileSafe reads the file at path, returning its text and true on
// success. It returns ("", false) when the file exceeds maxSize, contains a
// null byte (binary), or cannot be read at all. Undecodable byte sequences
// are replaced rather than failing. It never returns an error.
func (b *Builder) ReadFileSafe(path string) (string, bool) {
	maxSize := b.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if info.Size() > maxSize {
		if b.Logger != nil {
			b.Logger.Debugf("skipping oversized file (%d bytes): %s", info.Size(), path)
		}
		return "", false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	if bytes.IndexByte(raw, 0) >= 0 {
		if b.Logger != nil {
			b.Logger.Warnf("skipping binary file: %s", path)
		}
		return "", false
	}

	return strings.ToValidUTF8(string(raw), "�"), true
}

// Build produces one fragment per readable file, preserving input order.
// Files that fail reading are omitted without error. The mode tag is "folder"
// or "project" and becomes part of each source identifier.
func (b *Builder) Build(root string, files []string, mode string) []Fragment {
	fragments := make([]Fragment, 0, len(files))
	for _, path := range files {
		content, ok := b.ReadFileSafe(path)
		if !ok {
			continue
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		fragments = append(fragments, Fragment{
			Content: fmt.Sprintf("--- %s ---\n%s", rel, content),
			Source:  fmt.Sprintf("%s:%s/%s", mode, root, rel),
		})
	}
	return fragments
}

// Tree builds the project-mode summary fragment: a "Project: <name>" header,
// a blank line, then one line per selected file indented two spaces per
// directory level below the root, in walk order.
func Tree(root string, files []string) Fragment {
	lines := []string{fmt.Sprintf("Project: %s", filepath.Base(root)), ""}
	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		depth := strings.Count(rel, "/")
		lines = append(lines, strings.Repeat("  ", depth)+filepath.Base(rel))
	}

	return Fragment{
		Content: strings.Join(lines, "\n"),
		Source:  fmt.Sprintf("project:%s/%s", root, TreeSource),
	}
}
