package testsupport

import (
	"testing"

	"m8org/internal/config"
	"m8org/internal/history"
)

// MustOpenHistory opens the history store for tests and registers cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg.Paths.StateDir)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
