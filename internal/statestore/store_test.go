package statestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"pagewatch/internal/config"
	"pagewatch/internal/services"
	"pagewatch/internal/signals"
)

func openBoth(t *testing.T, kind signals.Kind) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := OpenSQLite(filepath.Join(dir, "db", "state.db"), kind, nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]Store{
		"file":   NewFileStore(filepath.Join(dir, "file", "state.txt"), kind, nil),
		"sqlite": sqlite,
	}
}

func TestStoresReportAbsentThenRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range openBoth(t, signals.KindComposite) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := store.Read(ctx); err != nil || ok {
				t.Fatalf("expected absent record, got ok=%v err=%v", ok, err)
			}
			want := signals.Composite("March", "2024")
			if err := store.Write(ctx, want); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, ok, err := store.Read(ctx)
			if err != nil || !ok {
				t.Fatalf("expected record, got ok=%v err=%v", ok, err)
			}
			if got != want {
				t.Fatalf("Read() = %+v, want %+v", got, want)
			}
			if err := store.Write(ctx, signals.Composite("April", "")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, _, _ = store.Read(ctx)
			if got.Month != "April" || got.Year != "" {
				t.Fatalf("expected overwrite, got %+v", got)
			}
			removed, err := store.Reset(ctx)
			if err != nil || !removed {
				t.Fatalf("Reset: removed=%v err=%v", removed, err)
			}
			if _, ok, _ := store.Read(ctx); ok {
				t.Fatal("expected record to be gone after reset")
			}
			if store.Location() == "" {
				t.Fatal("expected location")
			}
		})
	}
}

func TestScalarEmptyValueIsAPresentRecord(t *testing.T) {
	ctx := context.Background()
	for name, store := range openBoth(t, signals.KindScalar) {
		t.Run(name, func(t *testing.T) {
			if err := store.Write(ctx, signals.Scalar("")); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, ok, err := store.Read(ctx)
			if err != nil || !ok {
				t.Fatalf("expected present record, got ok=%v err=%v", ok, err)
			}
			if !got.Empty() {
				t.Fatalf("expected empty value, got %+v", got)
			}
		})
	}
}

func TestFileStoreFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.txt")
	store := NewFileStore(path, signals.KindComposite, nil)
	if err := store.Write(context.Background(), signals.Composite(" March ", "2024")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "March,2024" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestFileStoreReadsLegacyContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.txt")
	if err := os.WriteFile(path, []byte("March\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok, err := NewFileStore(path, signals.KindComposite, nil).Read(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected record, got ok=%v err=%v", ok, err)
	}
	if got != signals.Composite("March", "") {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestFileStoreReadErrorIsStateIO(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, signals.KindComposite, nil)
	_, _, err := store.Read(context.Background())
	if !errors.Is(err, services.ErrStateIO) {
		t.Fatalf("expected state io marker, got %v", err)
	}
}

func TestFileStoreWriteErrorIsStateIO(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	store := NewFileStore(filepath.Join(blocker, "state.txt"), signals.KindComposite, nil)
	err := store.Write(context.Background(), signals.Composite("March", ""))
	if !errors.Is(err, services.ErrStateIO) {
		t.Fatalf("expected state io marker, got %v", err)
	}
}

func TestFileStoreWriteWaitsForLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.txt")
	store := NewFileStore(path, signals.KindComposite, nil)

	held := flock.New(path + ".lock")
	if err := held.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- store.Write(context.Background(), signals.Composite("April", "2026")) }()

	select {
	case err := <-done:
		t.Fatalf("Write finished while the lock was held: %v", err)
	case <-time.After(150 * time.Millisecond):
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no record before unlock, stat err=%v", err)
	}

	if err := held.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Write: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Write did not finish after unlock")
	}
	got, ok, err := store.Read(context.Background())
	if err != nil || !ok || got != signals.Composite("April", "2026") {
		t.Fatalf("unexpected record %+v ok=%v err=%v", got, ok, err)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	cfg := config.Default()
	cfg.State.Path = filepath.Join(t.TempDir(), "state.txt")
	store, err := Open(&cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("expected file store, got %T", store)
	}

	cfg.State.Backend = config.BackendSQLite
	cfg.State.Path = filepath.Join(t.TempDir(), "state.db")
	store, err = Open(&cfg, nil)
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	defer store.Close()
	if _, ok := store.(*SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}

	cfg.State.Backend = "redis"
	if _, err := Open(&cfg, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
