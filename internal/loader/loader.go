// Package loader exposes the two fragment-loading entry points: a plain
// recursive folder walk and a project-aware walk that respects version
// control and prepends a tree summary.
package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/harrison/fragments/internal/filter"
	"github.com/harrison/fragments/internal/fragment"
	"github.com/harrison/fragments/internal/ignore"
	"github.com/harrison/fragments/internal/logger"
	"github.com/harrison/fragments/internal/walker"
)

// Mode tags embedded in fragment source identifiers.
const (
	ModeFolder  = "folder"
	ModeProject = "project"
)

// ErrNotDirectory indicates the resolved root does not exist or is not a
// directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrNoFiles indicates a walk completed but selected zero files. Callers
// should treat it as a user-correctable input error.
var ErrNoFiles = errors.New("no text files found")

// Loader composes the walker and fragment builder into the two loading
// operations. The zero value is usable; New fills in production defaults.
type Loader struct {
	// MaxFiles caps how many files one walk selects. Zero uses the walker
	// default.
	MaxFiles int

	// MaxSize caps the largest single file read. Zero uses the builder
	// default.
	MaxSize int64

	// Lister supplies the version-control listing for project mode. Nil
	// skips straight to the .gitignore fallback.
	Lister ignore.FileLister

	// Logger receives diagnostics. Nil disables logging.
	Logger logger.Logger
}

// New returns a Loader wired for production use: real git listing and
// discarded diagnostics.
func New() *Loader {
	return &Loader{
		Lister: ignore.NewGitLister(),
		Logger: logger.Discard(),
	}
}

// Result carries the fragments of one load plus the walk metadata consumers
// of the CLI (summary display, history store) care about.
type Result struct {
	Fragments []fragment.Fragment
	Root      string
	FileCount int
	Truncated bool
}

// Folder loads all recognized text files under the argument's path as
// fragments, without any version-control awareness.
//
// It fails when the resolved root is not a directory or when no files are
// selected; both errors name the argument and resolved path.
func (l *Loader) Folder(ctx context.Context, argument string) (*Result, error) {
	return l.load(ctx, argument, ModeFolder)
}

// Project loads project files under the argument's path, respecting the
// ignore source (git listing, then .gitignore, then nothing), and prepends a
// tree-summary fragment whose source ends in FILE_TREE.
func (l *Loader) Project(ctx context.Context, argument string) (*Result, error) {
	return l.load(ctx, argument, ModeProject)
}

func (l *Loader) load(ctx context.Context, argument, mode string) (*Result, error) {
	path, extFilter := filter.ParseArgument(argument)

	root, err := walker.Root(path)
	if err != nil {
		return nil, fmt.Errorf("%s:%s - %q is %w", mode, argument, path, ErrNotDirectory)
	}

	files, truncated, err := walker.Walk(ctx, root, walker.Options{
		RespectIgnore: mode == ModeProject,
		MaxFiles:      l.MaxFiles,
		Filter:        extFilter,
		Lister:        l.Lister,
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%s - walk failed: %w", mode, argument, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s:%s - %w in %q", mode, argument, ErrNoFiles, root)
	}

	builder := &fragment.Builder{MaxSize: l.MaxSize, Logger: l.Logger}

	fragments := make([]fragment.Fragment, 0, len(files)+1)
	if mode == ModeProject {
		fragments = append(fragments, fragment.Tree(root, files))
	}
	fragments = append(fragments, builder.Build(root, files, mode)...)

	return &Result{
		Fragments: fragments,
		Root:      root,
		FileCount: len(files),
		Truncated: truncated,
	}, nil
}
