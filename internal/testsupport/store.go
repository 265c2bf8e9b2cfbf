package testsupport

import (
	"testing"

	"pagewatch/internal/config"
	"pagewatch/internal/logging"
	"pagewatch/internal/statestore"
)

// MustOpenStore opens the configured state store for tests and registers
// cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) statestore.Store {
	t.Helper()

	store, err := statestore.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("statestore.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
