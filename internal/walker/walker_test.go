package walker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/fragments/internal/filter"
)

// writeTree creates the given relative files under dir with dummy content.
func writeTree(t *testing.T, dir string, files []string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte("content of "+f), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

// relNames converts absolute result paths back to slash-separated paths
// relative to root.
func relNames(t *testing.T, root string, paths []string) []string {
	t.Helper()
	var out []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("failed to relativize %s: %v", p, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

type staticLister struct {
	files []string
	err   error
}

func (l *staticLister) ListFiles(ctx context.Context, root string) ([]string, error) {
	return l.files, l.err
}

func TestWalkDefaultDetection(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{
		"README.md",
		"main.py",
		"logo.png",
		"docs/guide.md",
		"node_modules/package.json",
		"dist/bundle.js",
		".git/config",
	})

	files, _, err := Walk(context.Background(), tmpDir, Options{})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	got := relNames(t, tmpDir, files)
	want := []string{"README.md", "main.py", "docs/guide.md"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalkDeterministicOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{
		"zeta.md", "alpha.md", "mid/b.md", "mid/a.md", "aaa/x.md",
	})

	files, _, err := Walk(context.Background(), tmpDir, Options{})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	// A directory's own files come before any of its subdirectories, each
	// group in ascending name order.
	got := relNames(t, tmpDir, files)
	want := []string{"alpha.md", "zeta.md", "aaa/x.md", "mid/a.md", "mid/b.md"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalkNotADirectory(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "plain.txt")
	writeTree(t, tmpDir, []string{"plain.txt"})

	for _, root := range []string{file, filepath.Join(tmpDir, "missing")} {
		_, _, err := Walk(context.Background(), root, Options{})
		var notDir *ErrNotDirectory
		if !errors.As(err, &notDir) {
			t.Errorf("Walk(%q) error = %v, want ErrNotDirectory", root, err)
		}
	}
}

func TestWalkMaxFilesStopsTraversal(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{
		"a.md", "b.md", "c.md", "sub/d.md", "sub/e.md", "sub/f.md",
	})

	files, truncated, err := Walk(context.Background(), tmpDir, Options{MaxFiles: 2})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if !truncated {
		t.Error("expected truncated walk, eligible files remained beyond the cap")
	}

	got := relNames(t, tmpDir, files)
	if got[0] != "a.md" || got[1] != "b.md" {
		t.Errorf("cap should keep the first files in walk order, got %v", got)
	}
}

func TestWalkCapPrefersShallowFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"aaa/x.md", "top.md"})

	files, truncated, err := Walk(context.Background(), tmpDir, Options{MaxFiles: 1})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	got := relNames(t, tmpDir, files)
	if len(got) != 1 || got[0] != "top.md" {
		t.Errorf("root files must be selected before subdirectory files, got %v", got)
	}
	if !truncated {
		t.Error("expected truncated walk")
	}
}

func TestWalkExactCapNotTruncated(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"a.md", "b.md", "sub/c.md"})

	files, truncated, err := Walk(context.Background(), tmpDir, Options{MaxFiles: 3})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	if truncated {
		t.Error("nothing was cut, walk must not report truncation")
	}
}

func TestWalkWithIncludeFilter(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{
		"README.md", "main.py", "sub/guide.md", "sub/tool.py",
	})

	_, f := filter.ParseArgument(".?ext=md")
	files, _, err := Walk(context.Background(), tmpDir, Options{Filter: f})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	got := relNames(t, tmpDir, files)
	want := []string{"README.md", "sub/guide.md"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWalkRespectIgnoreTrackedSet(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{
		"main.go", "secret.md", "docs/guide.md",
	})

	lister := &staticLister{files: []string{"main.go", "docs/guide.md"}}
	files, _, err := Walk(context.Background(), tmpDir, Options{
		RespectIgnore: true,
		Lister:        lister,
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	got := relNames(t, tmpDir, files)
	want := []string{"main.go", "docs/guide.md"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalkRespectIgnoreGitignoreFallback(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{
		"main.go", "prod.env", "out/bundle.js", "src/app.js",
	})
	if err := os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte("*.env\nout/\n"), 0644); err != nil {
		t.Fatalf("failed to write .gitignore: %v", err)
	}

	lister := &staticLister{err: errors.New("git unavailable")}
	files, _, err := Walk(context.Background(), tmpDir, Options{
		RespectIgnore: true,
		Lister:        lister,
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	got := relNames(t, tmpDir, files)
	for _, g := range got {
		if g == "prod.env" || g == "out/bundle.js" {
			t.Errorf("ignored path %q present in result %v", g, got)
		}
	}

	seen := map[string]bool{}
	for _, g := range got {
		seen[g] = true
	}
	if !seen["main.go"] || !seen["src/app.js"] {
		t.Errorf("expected kept files missing from %v", got)
	}
}

func TestWalkIgnoreDisabledInFolderMode(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"kept.md", "also.env"})
	if err := os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte("*.env\n"), 0644); err != nil {
		t.Fatalf("failed to write .gitignore: %v", err)
	}

	files, _, err := Walk(context.Background(), tmpDir, Options{RespectIgnore: false})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	got := relNames(t, tmpDir, files)
	seen := map[string]bool{}
	for _, g := range got {
		seen[g] = true
	}
	if !seen["also.env"] {
		t.Errorf(".gitignore must not apply when ignore handling is disabled, got %v", got)
	}
}
