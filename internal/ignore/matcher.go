// Package ignore resolves the ignore source used by project-mode walks.
//
// Exactly one source is active per walk: the set of files reported by a
// version-control listing, a matcher compiled from the root .gitignore, or
// nothing. Resolution failures are never surfaced; the resolver degrades
// silently to the next fallback.
package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// pattern is one compiled ignore rule.
type pattern struct {
	re     *regexp.Regexp
	negate bool
	line   string
}

// Matcher holds an ordered list of compiled gitignore-style patterns.
// Later patterns override earlier ones, so a trailing negation re-includes a
// previously ignored path.
type Matcher struct {
	patterns []*pattern
}

// CompileLines compiles gitignore-style pattern lines into a Matcher.
// Blank lines, comments, and lines that fail to compile are dropped.
func CompileLines(lines ...string) *Matcher {
	m := &Matcher{}
	for _, line := range lines {
		re, negate, ok := compileLine(line)
		if !ok {
			continue
		}
		m.patterns = append(m.patterns, &pattern{re: re, negate: negate, line: line})
	}
	return m
}

// CompileFile reads an ignore file and compiles its lines.
func CompileFile(path string) (*Matcher, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return CompileLines(strings.Split(string(content), "\n")...), nil
}

// Empty reports whether the matcher holds no usable patterns.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

// Matches reports whether the root-relative path is ignored. The last
// matching pattern decides, honoring negation.
func (m *Matcher) Matches(relPath string) bool {
	if m == nil {
		return false
	}
	normalized := filepath.ToSlash(relPath)

	matched := false
	for _, p := range m.patterns {
		if p.re.MatchString(normalized) {
			matched = !p.negate
		}
	}
	return matched
}

// compileLine turns one ignore-file line into a regexp plus negation flag.
// Returns ok=false for blanks, comments, and uncompilable patterns.
func compileLine(line string) (*regexp.Regexp, bool, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false, false
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = trimmed[1:]
	}

	// Escaped leading "#" or "!" are literals.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	expr := translate(trimmed)

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, false, false
	}
	return re, negate, true
}

// Placeholders protect double-star expansions from the single-star pass.
const (
	phMid    = "\x00M\x00"
	phSuffix = "\x00S\x00"
	phPrefix = "\x00P\x00"
)

// translate converts one gitignore glob into an anchored regexp.
func translate(glob string) string {
	p := escapeSpecials(glob)

	// "**" segments first, then the remaining single-character wildcards.
	p = strings.ReplaceAll(p, "/**/", phMid)
	if strings.HasSuffix(p, "/**") {
		p = strings.TrimSuffix(p, "/**") + phSuffix
	}
	if strings.HasPrefix(p, "**/") {
		p = phPrefix + p[3:]
	}
	p = strings.ReplaceAll(p, "*", "[^/]*")
	p = strings.ReplaceAll(p, "?", "[^/]")
	p = strings.ReplaceAll(p, phMid, `(/|/.+/)`)
	p = strings.ReplaceAll(p, phSuffix, `(/.*)?`)
	p = strings.ReplaceAll(p, phPrefix, `(.*/)?`)

	// A trailing "/" means "contents of this directory"; anything else may
	// also match a whole subtree rooted at the matched entry.
	if strings.HasSuffix(glob, "/") {
		p += "(|.*)$"
	} else {
		p += "(|/.*)$"
	}

	// A leading "/" anchors the pattern to the walk root; otherwise it may
	// match at any depth.
	if strings.HasPrefix(p, "/") {
		return "^" + p[1:]
	}
	return "^(|.*/)" + p
}

// escapeSpecials escapes regexp metacharacters except "*", "?", and "/".
func escapeSpecials(p string) string {
	for _, c := range `.+()|^$[]{}` {
		p = strings.ReplaceAll(p, string(c), `\`+string(c))
	}
	return p
}
