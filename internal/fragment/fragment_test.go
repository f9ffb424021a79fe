package fragment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileSafeNormalFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld\n"), 0644))

	b := &Builder{}
	content, ok := b.ReadFileSafe(path)

	require.True(t, ok)
	assert.Equal(t, "hello\nworld\n", content)
}

func TestReadFileSafeBinaryFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "image.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50, 0x00, 0x47}, 0644))

	b := &Builder{}
	_, ok := b.ReadFileSafe(path)
	assert.False(t, ok, "null byte means binary, which is skipped")
}

func TestReadFileSafeOversizedFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "big.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0644))

	b := &Builder{MaxSize: 16}
	_, ok := b.ReadFileSafe(path)
	assert.False(t, ok)

	// At exactly the cap the file is still readable.
	b = &Builder{MaxSize: 64}
	content, ok := b.ReadFileSafe(path)
	require.True(t, ok)
	assert.Len(t, content, 64)
}

func TestReadFileSafeMissingFile(t *testing.T) {
	b := &Builder{}
	_, ok := b.ReadFileSafe(filepath.Join(t.TempDir(), "missing.txt"))
	assert.False(t, ok, "read errors are swallowed, never raised")
}

func TestReadFileSafeInvalidUTF8(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{'c', 'a', 'f', 0xe9}, 0644))

	b := &Builder{}
	content, ok := b.ReadFileSafe(path)

	require.True(t, ok, "bad encoding never fails the read")
	assert.True(t, strings.HasPrefix(content, "caf"))
	assert.Contains(t, content, "�")
}

func TestBuild(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "README.md"), []byte("# My Project"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "docs", "guide.md"), []byte("guide text"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "blob.bin"), []byte{0x00, 0x01}, 0644))

	files := []string{
		filepath.Join(tmpDir, "README.md"),
		filepath.Join(tmpDir, "blob.bin"),
		filepath.Join(tmpDir, "docs", "guide.md"),
	}

	b := &Builder{}
	fragments := b.Build(tmpDir, files, "folder")

	// The binary file is silently dropped; order of the rest is preserved.
	require.Len(t, fragments, 2)

	assert.Equal(t, "--- README.md ---\n# My Project", fragments[0].Content)
	assert.Equal(t, "folder:"+tmpDir+"/README.md", fragments[0].Source)

	assert.Equal(t, "--- docs/guide.md ---\nguide text", fragments[1].Content)
	assert.Equal(t, "folder:"+tmpDir+"/docs/guide.md", fragments[1].Source)
}

func TestTree(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{
		filepath.Join(tmpDir, "README.md"),
		filepath.Join(tmpDir, "src", "main.go"),
		filepath.Join(tmpDir, "src", "util", "paths.go"),
	}

	f := Tree(tmpDir, files)

	lines := strings.Split(f.Content, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Project: "+filepath.Base(tmpDir), lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "README.md", lines[2])
	assert.Equal(t, "  main.go", lines[3])
	assert.Equal(t, "    paths.go", lines[4])

	assert.Equal(t, "project:"+tmpDir+"/FILE_TREE", f.Source)
}
