package preflight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"pagewatch/internal/config"
	"pagewatch/internal/extractor"
	"pagewatch/internal/notifications"
	"pagewatch/internal/statestore"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStateLocation checks the directory holding the state record. A missing
// directory passes when its nearest existing ancestor is writable, since the
// first write creates it.
func CheckStateLocation(name, statePath string) Result {
	dir := filepath.Dir(statePath)
	if _, err := os.Stat(dir); err == nil {
		return CheckDirectoryAccess(name, dir)
	}
	ancestor := dir
	for {
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			break
		}
		ancestor = parent
		if _, err := os.Stat(ancestor); err == nil {
			break
		}
	}
	check := CheckDirectoryAccess(name, ancestor)
	if !check.Passed {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot be created under %s)", dir, ancestor)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (created on first run)", dir)}
}

// CheckStateRecord reads the current record without modifying it.
func CheckStateRecord(ctx context.Context, cfg *config.Config, logger *slog.Logger) Result {
	const name = "State record"

	store, err := statestore.Open(cfg, logger)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer store.Close()

	sig, ok, err := store.Read(ctx)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if !ok {
		return Result{Name: name, Passed: true, Detail: "absent (first run records the current value)"}
	}
	return Result{Name: name, Passed: true, Detail: sig.String()}
}

// CheckDestinations parses the destination list. An empty list passes unless
// notifications.require_destinations is set.
func CheckDestinations(cfg *config.Config, logger *slog.Logger) Result {
	const name = "Notifications"

	svc, err := notifications.NewService(cfg, logger)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	labels := svc.Destinations()
	if len(labels) == 0 {
		if cfg.Notifications.RequireDestinations {
			return Result{Name: name, Detail: "no destinations configured (required)"}
		}
		return Result{Name: name, Passed: true, Detail: "Disabled (no destinations configured)"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d configured: %s", len(labels), strings.Join(labels, ", "))}
}

// CheckTarget fetches the page once and reports the located value.
func CheckTarget(ctx context.Context, cfg *config.Config, logger *slog.Logger) Result {
	const name = "Target page"

	ext, err := extractor.New(cfg, logger)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	sig, err := ext.Extract(ctx)
	if err != nil {
		return Result{Name: name, Detail: summarizeFetchError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", sig, ext.URL())}
}

func summarizeFetchError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "fetch timed out (page unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "fetch timed out (page unreachable)"
	}
	return err.Error()
}
