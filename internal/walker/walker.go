package walker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/fragments/internal/classify"
	"github.com/harrison/fragments/internal/filter"
	"github.com/harrison/fragments/internal/ignore"
)

// DefaultMaxFiles caps how many files one walk may select.
const DefaultMaxFiles = 500

// ErrNotDirectory indicates the walk root does not exist or is not a directory.
type ErrNotDirectory struct {
	Path string
}

func (e *ErrNotDirectory) Error() string {
	return fmt.Sprintf("not a directory: %s", e.Path)
}

// Options configures a walk.
type Options struct {
	// RespectIgnore enables project-mode ignore handling: the ignore source
	// is resolved once before traversal and applied to every candidate.
	RespectIgnore bool

	// MaxFiles caps the result size. Zero means DefaultMaxFiles. Traversal
	// stops entirely once a file beyond the cap is found.
	MaxFiles int

	// Filter, when non-nil, replaces default text detection for file
	// selection.
	Filter *filter.ExtFilter

	// Lister supplies the version-control file listing for ignore
	// resolution. Only consulted when RespectIgnore is set.
	Lister ignore.FileLister
}

// Walk traverses the tree rooted at root and returns the selected file paths
// in deterministic order: within each directory, files are visited in
// ascending name order before any subdirectory is entered, subdirectories
// likewise in ascending name order. Skip-listed directories are pruned
// before descent and traversal halts once the MaxFiles cap would be
// exceeded; truncated reports that an eligible file beyond the cap was cut.
//
// The returned paths are absolute. The order is the order fragments are later
// built in.
func Walk(ctx context.Context, root string, opts Options) (files []string, truncated bool, err error) {
	resolved, err := filepath.Abs(root)
	if err != nil {
		return nil, false, &ErrNotDirectory{Path: root}
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return nil, false, &ErrNotDirectory{Path: resolved}
	}

	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}

	// The ignore source is fixed before traversal begins and held constant
	// for the whole walk.
	var src *ignore.Source
	if opts.RespectIgnore {
		src = ignore.Resolve(ctx, resolved, opts.Lister)
	}

	w := &walkState{
		root:     resolved,
		maxFiles: maxFiles,
		src:      src,
		filter:   opts.Filter,
	}
	w.descend(resolved)

	return w.files, w.truncated, nil
}

// walkState carries the traversal accumulators through the recursive descent.
type walkState struct {
	root     string
	maxFiles int
	src      *ignore.Source
	filter   *filter.ExtFilter

	files     []string
	truncated bool
}

// descend visits one directory: its files first, then its subdirectories,
// each group in ascending name order.
func (w *walkState) descend(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directories are skipped, not fatal.
		return
	}

	// ReadDir returns entries sorted by name, which keeps both groups in
	// ascending order without an extra sort.
	var names []string
	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			if !classify.ShouldSkipDir(entry.Name()) {
				subdirs = append(subdirs, entry.Name())
			}
			continue
		}
		names = append(names, entry.Name())
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		if !w.selectFile(path) {
			continue
		}
		// Truncation means an eligible file was actually cut, so the cap
		// check runs against the file that would exceed it.
		if len(w.files) >= w.maxFiles {
			w.truncated = true
			return
		}
		w.files = append(w.files, path)
	}

	for _, name := range subdirs {
		w.descend(filepath.Join(dir, name))
		if w.truncated {
			return
		}
	}
}

// selectFile applies the ignore source and file filter to one candidate.
func (w *walkState) selectFile(path string) bool {
	relPath, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	if w.src != nil && !w.src.Keep(relPath) {
		return false
	}
	if w.filter != nil {
		return w.filter.Matches(path)
	}
	return classify.IsTextFile(path)
}

// Root resolves a walk root to its absolute form, validating that it exists
// and is a directory.
func Root(path string) (string, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return "", &ErrNotDirectory{Path: path}
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", &ErrNotDirectory{Path: resolved}
	}
	return resolved, nil
}
