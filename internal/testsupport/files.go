package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"m8org/internal/config"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = 0x42
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSamples creates placeholder files under the configured source
// directory. Paths are slash-separated and relative to the source root.
func WriteSamples(t testing.TB, cfg *config.Config, relPaths ...string) {
	t.Helper()
	for _, rel := range relPaths {
		WriteFile(t, filepath.Join(cfg.Paths.SourceDir, filepath.FromSlash(rel)), 64)
	}
}
