package statestore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"pagewatch/internal/fileutil"
	"pagewatch/internal/logging"
	"pagewatch/internal/signals"
)

// FileStore keeps the record in a plain text file.
type FileStore struct {
	path   string
	kind   signals.Kind
	lock   *flock.Flock
	logger *slog.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by path. Nothing touches the disk until
// the first Read or Write.
func NewFileStore(path string, kind signals.Kind, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		kind:   kind,
		lock:   flock.New(path + ".lock"),
		logger: logging.NewComponentLogger(logger, "statestore"),
	}
}

func (s *FileStore) Location() string { return s.path }

func (s *FileStore) Read(ctx context.Context) (signals.Signal, bool, error) {
	if err := ctx.Err(); err != nil {
		return signals.Signal{}, false, wrapIO("read", s.path, err)
	}
	data, exists, err := fileutil.ReadFileIfExists(s.path)
	if err != nil {
		return signals.Signal{}, false, wrapIO("read", s.path, err)
	}
	if !exists {
		logging.WithContext(ctx, s.logger).Debug("no state record", logging.String("path", s.path))
		return signals.Signal{}, false, nil
	}
	sig, ok := signals.Decode(s.kind, string(data))
	return sig, ok, nil
}

func (s *FileStore) Write(ctx context.Context, sig signals.Signal) error {
	if err := ctx.Err(); err != nil {
		return wrapIO("write", s.path, err)
	}
	unlock, err := s.acquire()
	if err != nil {
		return wrapIO("lock", s.path, err)
	}
	defer unlock()

	if err := fileutil.WriteFileAtomic(s.path, []byte(signals.Encode(sig)), 0o644); err != nil {
		return wrapIO("write", s.path, err)
	}
	logging.WithContext(ctx, s.logger).Debug("state record written",
		logging.String("path", s.path),
		logging.String("signal", sig.String()))
	return nil
}

func (s *FileStore) Reset(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, wrapIO("reset", s.path, err)
	}
	removed, err := fileutil.RemoveIfExists(s.path)
	if err != nil {
		return false, wrapIO("reset", s.path, err)
	}
	return removed, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) acquire() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, err
	}
	if err := s.lock.Lock(); err != nil {
		return nil, err
	}
	return func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release state lock",
				logging.String("lock", s.lock.Path()),
				logging.Error(err))
		}
	}, nil
}
