// Package walker performs the recursive directory traversal behind the
// fragment loaders.
//
// A walk is single-threaded and synchronous. It validates the root, resolves
// the ignore source once (project mode only), then descends one directory at
// a time: each directory's files are visited before any of its
// subdirectories, both in ascending name order. Skip-listed directories
// (node_modules, .git, virtualenvs, build output and friends) are pruned
// before descent so their subtrees are never visited. Each file is tested
// against the active ignore source and either the caller's extension filter
// or default text detection, and the traversal stops outright once the file
// cap would be exceeded.
//
// Results are deterministic for an unchanging filesystem. Because files are
// emitted before descent, the cap favors shallow files over deep ones, and it
// can truncate subtrees that sort later.
package walker
