package filelock

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out", "fragments.txt")

	if err := AtomicWrite(target, []byte("first")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read target: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("content = %q, want %q", data, "first")
	}

	// Overwrite replaces content completely.
	if err := AtomicWrite(target, []byte("second")); err != nil {
		t.Fatalf("AtomicWrite overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(target)
	if string(data) != "second" {
		t.Errorf("content after overwrite = %q, want %q", data, "second")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("failed to list directory: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "fragments.txt" {
			t.Errorf("unexpected leftover file: %s", e.Name())
		}
	}
}

func TestLockAndWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "output.txt")

	if err := LockAndWrite(target, []byte("locked write")); err != nil {
		t.Fatalf("LockAndWrite failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read target: %v", err)
	}
	if string(data) != "locked write" {
		t.Errorf("content = %q, want %q", data, "locked write")
	}
}

func TestTryLock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock := NewFileLock(lockPath)
	acquired, err := lock.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !acquired {
		t.Fatal("expected to acquire uncontended lock")
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
}
