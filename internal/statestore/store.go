package statestore

import (
	"context"
	"fmt"
	"log/slog"

	"pagewatch/internal/config"
	"pagewatch/internal/services"
	"pagewatch/internal/signals"
)

// Store reads and writes the single state slot.
type Store interface {
	// Read returns the stored signal and true, or false when no record exists.
	Read(ctx context.Context) (signals.Signal, bool, error)
	// Write replaces the stored record.
	Write(ctx context.Context, sig signals.Signal) error
	// Reset removes the record and reports whether one existed.
	Reset(ctx context.Context) (bool, error)
	// Location describes where the record lives.
	Location() string
	Close() error
}

// Open builds the backend selected in cfg.
func Open(cfg *config.Config, logger *slog.Logger) (Store, error) {
	kind := cfg.SignalKind()
	switch cfg.State.Backend {
	case config.BackendSQLite:
		return OpenSQLite(cfg.State.Path, kind, logger)
	case config.BackendFile, "":
		return NewFileStore(cfg.State.Path, kind, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown state backend %q", services.ErrConfiguration, cfg.State.Backend)
	}
}

func wrapIO(operation, location string, err error) error {
	return services.Wrap(services.ErrStateIO, "statestore", operation, location, err)
}
