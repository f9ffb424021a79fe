package ignore

import (
	"context"
	"path/filepath"
)

// GitignoreFilename is the ignore-pattern file consulted when the
// version-control listing is unavailable.
const GitignoreFilename = ".gitignore"

// Source is the single ignore mechanism active for one project-mode walk.
// At most one of tracked / matcher is set; the zero value ignores nothing.
type Source struct {
	tracked map[string]struct{}
	matcher *Matcher
}

// None reports whether no ignore mechanism is active.
func (s *Source) None() bool {
	return s == nil || (s.tracked == nil && s.matcher == nil)
}

// Keep reports whether the root-relative path survives the ignore source.
// With a tracked-file set, only exact members survive. With a matcher,
// non-matching paths survive. With no source, everything survives.
func (s *Source) Keep(relPath string) bool {
	if s == nil {
		return true
	}
	if s.tracked != nil {
		_, ok := s.tracked[filepath.ToSlash(relPath)]
		return ok
	}
	if s.matcher != nil {
		return !s.matcher.Matches(relPath)
	}
	return true
}

// Resolve determines the ignore source for a walk rooted at root.
//
// The version-control listing is preferred; on any failure the root
// .gitignore is compiled instead; if that is absent or unusable the returned
// source ignores nothing. Resolve never returns an error.
func Resolve(ctx context.Context, root string, lister FileLister) *Source {
	if lister != nil {
		if files, err := lister.ListFiles(ctx, root); err == nil {
			tracked := make(map[string]struct{}, len(files))
			for _, f := range files {
				tracked[filepath.ToSlash(f)] = struct{}{}
			}
			return &Source{tracked: tracked}
		}
	}

	matcher, err := CompileFile(filepath.Join(root, GitignoreFilename))
	if err != nil || matcher.Empty() {
		return &Source{}
	}
	return &Source{matcher: matcher}
}
