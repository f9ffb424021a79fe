// Package classify decides whether a path looks like text worth loading.
//
// The tables here are process-wide constant data, initialized once and never
// mutated. Classification is a pure decision over the filename, except for a
// single bounded read used to sniff shebang lines on extensionless files.
package classify

import (
	"os"
	"path/filepath"
	"strings"
)

// textExtensions is the set of lowercase file extensions (with leading dot)
// treated as text by default.
var textExtensions = map[string]struct{}{
	// Documents
	".md":   {},
	".qmd":  {},
	".txt":  {},
	".rst":  {},
	".adoc": {},
	".tex":  {},
	".org":  {},
	// Code
	".py":    {},
	".js":    {},
	".ts":    {},
	".jsx":   {},
	".tsx":   {},
	".rb":    {},
	".go":    {},
	".rs":    {},
	".java":  {},
	".c":     {},
	".cpp":   {},
	".h":     {},
	".hpp":   {},
	".cs":    {},
	".swift": {},
	".kt":    {},
	".scala": {},
	".r":     {},
	".jl":    {},
	".lua":   {},
	".pl":    {},
	".pm":    {},
	".php":   {},
	".sh":    {},
	".bash":  {},
	".zsh":   {},
	".fish":  {},
	".ps1":   {},
	".bat":   {},
	".cmd":   {},
	// Web
	".html": {},
	".htm":  {},
	".css":  {},
	".scss": {},
	".sass": {},
	".less": {},
	".svg":  {},
	".xml":  {},
	".xsl":  {},
	// Data / config
	".json":       {},
	".yaml":       {},
	".yml":        {},
	".toml":       {},
	".ini":        {},
	".cfg":        {},
	".conf":       {},
	".env":        {},
	".properties": {},
	".csv":        {},
	".tsv":        {},
	// Build / CI
	".dockerfile": {},
	".makefile":   {},
	".cmake":      {},
	".gradle":     {},
	".sbt":        {},
	// Other
	".sql":     {},
	".graphql": {},
	".proto":   {},
	".tf":      {},
	".hcl":     {},
	".ipynb":   {},
	".bib":     {},
	".vim":     {},
	".el":      {},
}

// textFilenames is the set of exact filenames (case-sensitive) that are
// always treated as text regardless of extension.
var textFilenames = map[string]struct{}{
	// Build / project files
	"Makefile":       {},
	"Dockerfile":     {},
	"Jenkinsfile":    {},
	"Vagrantfile":    {},
	"Procfile":       {},
	"Gemfile":        {},
	"Rakefile":       {},
	"Brewfile":       {},
	"CMakeLists.txt": {},
	// Documentation
	"LICENSE":      {},
	"LICENCE":      {},
	"COPYING":      {},
	"README":       {},
	"CHANGELOG":    {},
	"CHANGES":      {},
	"AUTHORS":      {},
	"CONTRIBUTING": {},
	"CLAUDE.md":    {},
	// Shell dotfiles
	".bashrc":       {},
	".bash_profile": {},
	".bash_login":   {},
	".bash_logout":  {},
	".profile":      {},
	".zshrc":        {},
	".zprofile":     {},
	".zshenv":       {},
	".zlogin":       {},
	".zlogout":      {},
	// Editor / tool dotfiles
	".vimrc":     {},
	".gvimrc":    {},
	".nanorc":    {},
	".inputrc":   {},
	".tmux.conf": {},
	// Git dotfiles
	".gitignore":     {},
	".gitconfig":     {},
	".gitattributes": {},
	".gitmodules":    {},
	// Other config dotfiles
	".dockerignore": {},
	".editorconfig": {},
	".env.example":  {},
	".eslintrc":     {},
	".prettierrc":   {},
	".flake8":       {},
	".pylintrc":     {},
	".npmrc":        {},
	".yarnrc":       {},
	".curlrc":       {},
	".wgetrc":       {},
	".screenrc":     {},
	".hushlogin":    {},
}

// skipDirs is the set of directory names that are never descended into.
var skipDirs = map[string]struct{}{
	".git":          {},
	".hg":           {},
	".svn":          {},
	"node_modules":  {},
	"__pycache__":   {},
	".tox":          {},
	".nox":          {},
	".mypy_cache":   {},
	".pytest_cache": {},
	".ruff_cache":   {},
	"venv":          {},
	".venv":         {},
	"env":           {},
	".env":          {},
	".eggs":         {},
	"dist":          {},
	"build":         {},
	".idea":         {},
	".vscode":       {},
	".DS_Store":     {},
}

// shebangMarker is the two-byte prefix identifying an executable script.
var shebangMarker = []byte("#!")

// IsTextFile reports whether the file at path is likely text, using the
// default detection rules: exact filename match, then lowercased extension
// match, then a shebang sniff for extensionless files.
//
// The shebang check reads the first two bytes of the file. If the read fails
// (permission, disappearance, any I/O error) the file is treated as not text;
// this function never returns an error.
func IsTextFile(path string) bool {
	name := filepath.Base(path)
	if _, ok := textFilenames[name]; ok {
		return true
	}

	ext := strings.ToLower(Ext(name))
	if _, ok := textExtensions[ext]; ok {
		return true
	}

	// Extensionless files might still be scripts; sniff for "#!".
	if ext == "" {
		return hasShebang(path)
	}

	return false
}

// Ext returns the extension of a filename, with the leading dot of dotfile
// names not counting as an extension separator: Ext(".bashrc") is "" while
// Ext(".env.example") is ".example". For ordinary names it behaves like
// filepath.Ext.
func Ext(name string) string {
	name = filepath.Base(name)
	ext := filepath.Ext(name)
	if ext == name {
		// The only dot is the leading one; the name has no real extension.
		return ""
	}
	return ext
}

// hasShebang reports whether the file starts with the shebang marker.
func hasShebang(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 2)
	n, err := f.Read(buf)
	if err != nil || n < 2 {
		return false
	}
	return buf[0] == shebangMarker[0] && buf[1] == shebangMarker[1]
}

// ShouldSkipDir reports whether a directory with the given name should be
// excluded from traversal entirely. Matches the fixed skip list exactly,
// plus any name using the Python egg-info suffix convention.
func ShouldSkipDir(name string) bool {
	if _, ok := skipDirs[name]; ok {
		return true
	}
	return strings.HasSuffix(name, ".egg-info")
}

// IsDotfile reports whether the filename is a dotfile: the name starts with
// "." and has no further extension component. ".bashrc" qualifies;
// ".env.example" does not because ".example" counts as an extension.
func IsDotfile(name string) bool {
	name = filepath.Base(name)
	if !strings.HasPrefix(name, ".") {
		return false
	}
	// filepath.Ext treats the leading dot of ".bashrc" as part of the name,
	// so a non-empty result means there is a real trailing extension.
	return filepath.Ext(name[1:]) == ""
}
