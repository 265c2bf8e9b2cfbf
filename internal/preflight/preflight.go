package preflight

import (
	"context"
	"log/slog"

	"pagewatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config, logger *slog.Logger) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckStateLocation("State directory", cfg.State.Path),
		CheckStateRecord(ctx, cfg, logger),
		CheckDestinations(cfg, logger),
		CheckTarget(ctx, cfg, logger),
	}
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
