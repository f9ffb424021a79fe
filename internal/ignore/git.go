package ignore

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultGitTimeout bounds how long the version-control listing may run.
const DefaultGitTimeout = 10 * time.Second

// FileLister abstracts the version-control file listing for testability.
// Implementations return the root-relative paths of files the project
// considers part of itself: tracked files plus untracked files that are not
// ignored.
type FileLister interface {
	ListFiles(ctx context.Context, root string) ([]string, error)
}

// GitLister lists project files via git ls-files.
type GitLister struct {
	// Timeout bounds the subprocess. Zero means DefaultGitTimeout.
	Timeout time.Duration
}

// NewGitLister creates a GitLister with the default timeout.
func NewGitLister() *GitLister {
	return &GitLister{Timeout: DefaultGitTimeout}
}

// ListFiles runs "git ls-files --cached --others --exclude-standard" with the
// walk root as working directory and returns the reported relative paths.
// Any failure (missing git, timeout, nonzero exit) is returned as an error;
// callers are expected to fall back rather than surface it.
func (g *GitLister) ListFiles(ctx context.Context, root string) ([]string, error) {
	timeout := g.Timeout
	if timeout == 0 {
		timeout = DefaultGitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git ls-files in %s: %w", root, err)
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}
