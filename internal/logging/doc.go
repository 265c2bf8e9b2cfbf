// Package logging assembles structured slog loggers and formatting helpers used
// across pagewatch components.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so every line from one run carries the
// same run_id. The package also provides a no-op logger for tests and wiring
// code that cannot fail.
package logging
