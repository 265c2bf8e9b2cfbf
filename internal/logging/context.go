package logging

import (
	"context"
	"log/slog"

	"pagewatch/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for the per-run correlation identifier.
	FieldRunID = "run_id"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step for an operator reading a failure.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldURL is the watched page.
	FieldURL = "url"
	// FieldField names the located HTML field.
	FieldField = "field"
	// FieldOutcome is the reconciler outcome.
	FieldOutcome = "outcome"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	if rid, ok := services.RunIDFromContext(ctx); ok {
		return []slog.Attr{slog.String(FieldRunID, rid)}
	}
	return nil
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
