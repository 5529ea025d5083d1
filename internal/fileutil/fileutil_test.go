package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "kick.wav")
	if err := os.WriteFile(file, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, tc := range []struct {
		path string
		want bool
	}{
		{file, true},
		{dir, true},
		{filepath.Join(dir, "missing.wav"), false},
	} {
		got, err := Exists(tc.path)
		if err != nil {
			t.Fatalf("Exists(%q): %v", tc.path, err)
		}
		if got != tc.want {
			t.Fatalf("Exists(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestEnsureParentDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "drum", "kits", "kick.wav")
	if err := EnsureParentDir(target); err != nil {
		t.Fatalf("EnsureParentDir: %v", err)
	}
	info, err := os.Stat(filepath.Dir(target))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected parent directory, got %v %v", info, err)
	}
	if err := EnsureParentDir("kick.wav"); err != nil {
		t.Fatalf("relative bare name should be a no-op: %v", err)
	}
}

func TestRemovePartial(t *testing.T) {
	file := filepath.Join(t.TempDir(), "partial.wav")
	if err := os.WriteFile(file, []byte("RI"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := RemovePartial(file); err != nil {
		t.Fatalf("RemovePartial: %v", err)
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, got %v", err)
	}
	if err := RemovePartial(file); err != nil {
		t.Fatalf("second RemovePartial should ignore missing file: %v", err)
	}
}
