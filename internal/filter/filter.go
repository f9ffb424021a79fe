// Package filter parses and evaluates extension filters attached to loader
// arguments.
//
// An argument takes the form "<path>" or "<path>?ext=<spec>", where <spec> is
// a comma-separated token list:
//
//	ext=md,txt       include only these extensions
//	ext=!md,!txt     exclude these, include everything else text-like
//	ext=!md,+custom  exclude .md but force-include .custom
//	ext=dotfiles     accept all dotfiles; combines with the other forms
//
// Parsing is pure string processing and never touches the filesystem.
package filter

import (
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/harrison/fragments/internal/classify"
)

// Marker separates the path portion of an argument from the filter spec.
const Marker = "?ext="

// ExtFilter narrows the default text-detection decision for one walk.
// A parsed filter is immutable; Matches only reads it.
type ExtFilter struct {
	// Include lists extensions (or dotfile names) forming an allow-list.
	// Ignored when Exclude is non-empty.
	Include map[string]struct{}

	// Exclude lists extensions (or dotfile names) to reject. Non-empty
	// Exclude switches the filter into exclude mode.
	Exclude map[string]struct{}

	// ForceInclude lists extensions (or dotfile names) accepted
	// unconditionally, overriding Exclude.
	ForceInclude map[string]struct{}

	// Dotfiles accepts any dotfile outright when set.
	Dotfiles bool
}

// newExtFilter returns an ExtFilter with all sets allocated.
func newExtFilter() *ExtFilter {
	return &ExtFilter{
		Include:      make(map[string]struct{}),
		Exclude:      make(map[string]struct{}),
		ForceInclude: make(map[string]struct{}),
	}
}

// ExcludeMode reports whether the filter operates by exclusion: start from
// everything default detection would accept, then reject the Exclude set.
func (f *ExtFilter) ExcludeMode() bool {
	return len(f.Exclude) > 0
}

// Matches reports whether the file at path passes the filter.
//
// In exclude mode, files not explicitly excluded fall back to default text
// detection. In include mode there is no such fallback: a file absent from
// Include/ForceInclude (and not caught by the Dotfiles flag) is rejected even
// if default detection would have accepted it. The asymmetry is intentional.
func (f *ExtFilter) Matches(path string) bool {
	ext := strings.ToLower(classify.Ext(path))
	dot := classify.IsDotfile(path)
	name := strings.ToLower(baseName(path))

	if f.ExcludeMode() {
		if ext != "" {
			if _, ok := f.Exclude[ext]; ok {
				return false
			}
		}
		if dot {
			if _, ok := f.Exclude[name]; ok {
				return false
			}
		}

		if ext != "" {
			if _, ok := f.ForceInclude[ext]; ok {
				return true
			}
		}
		if dot {
			if _, ok := f.ForceInclude[name]; ok {
				return true
			}
		}

		if f.Dotfiles && dot {
			return true
		}

		return classify.IsTextFile(path)
	}

	// Include mode.
	if ext != "" {
		if _, ok := f.Include[ext]; ok {
			return true
		}
	}
	if dot {
		if _, ok := f.Include[name]; ok {
			return true
		}
	}

	if ext != "" {
		if _, ok := f.ForceInclude[ext]; ok {
			return true
		}
	}
	if dot {
		if _, ok := f.ForceInclude[name]; ok {
			return true
		}
	}

	return f.Dotfiles && dot
}

// baseName returns the final path component without importing path/filepath
// semantics for Windows separators; loader paths are slash or OS separated.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ParseArgument splits a loader argument into a root path and an optional
// extension filter.
//
// An empty or whitespace-only argument resolves to the current working
// directory with no filter. Without the "?ext=" marker the whole argument is
// the path (after ~ expansion). With it, the portion before the marker is the
// path (defaulting to ".") and the portion after is the comma-separated
// filter spec. Token grammar: "dotfiles" sets the dotfiles flag, "!tok" adds
// to Exclude, "+tok" adds to ForceInclude, anything else adds to Include;
// extensions are normalized to a single leading dot and lowercased.
func ParseArgument(argument string) (string, *ExtFilter) {
	if strings.TrimSpace(argument) == "" {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		return cwd, nil
	}

	if !strings.Contains(argument, Marker) {
		return expandPath(argument), nil
	}

	pathPart, spec, _ := strings.Cut(argument, Marker)
	if pathPart == "" {
		pathPart = "."
	}

	f := newExtFilter()
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		switch {
		case tok == "dotfiles":
			f.Dotfiles = true
		case strings.HasPrefix(tok, "!"):
			f.Exclude[normalizeExt(tok[1:])] = struct{}{}
		case strings.HasPrefix(tok, "+"):
			f.ForceInclude[normalizeExt(tok[1:])] = struct{}{}
		default:
			f.Include[normalizeExt(tok)] = struct{}{}
		}
	}

	return expandPath(pathPart), f
}

// normalizeExt ensures a token carries exactly one leading dot.
func normalizeExt(tok string) string {
	return "." + strings.TrimLeft(tok, ".")
}

// expandPath expands a leading ~ to the user's home directory. If expansion
// fails the path is returned unchanged; the walker will surface any
// not-a-directory error later.
func expandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
