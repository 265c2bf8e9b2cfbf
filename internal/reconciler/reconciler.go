package reconciler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pagewatch/internal/config"
	"pagewatch/internal/logging"
	"pagewatch/internal/notifications"
	"pagewatch/internal/services"
	"pagewatch/internal/signals"
)

// Source yields the current signal. *extractor.Extractor satisfies it.
type Source interface {
	Extract(ctx context.Context) (signals.Signal, error)
	URL() string
	Field() string
}

// StateStore is the part of statestore.Store a run needs.
type StateStore interface {
	Read(ctx context.Context) (signals.Signal, bool, error)
	Write(ctx context.Context, sig signals.Signal) error
	Location() string
}

// Notifier delivers events. notifications.Service satisfies it.
type Notifier interface {
	Notify(ctx context.Context, event notifications.Event) error
}

// Result describes what one run observed and did.
type Result struct {
	Outcome     Outcome
	Previous    signals.Signal
	HadPrevious bool
	Current     signals.Signal
	URL         string
	Timestamp   time.Time
	Wrote       bool
	Notified    bool
	NotifyErr   error
}

// Reconciler ties one Source, StateStore, and Notifier together.
type Reconciler struct {
	source   Source
	store    StateStore
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	titlePrefix string
	onInitial   bool
	onError     bool
	heartbeat   bool
}

// Option customizes a Reconciler.
type Option func(*Reconciler)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		if now != nil {
			r.now = now
		}
	}
}

// New builds a reconciler from explicit collaborators.
func New(cfg *config.Config, source Source, store StateStore, notifier Notifier, logger *slog.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		source:      source,
		store:       store,
		notifier:    notifier,
		logger:      logging.NewComponentLogger(logger, "reconciler"),
		now:         time.Now,
		titlePrefix: cfg.Notifications.TitlePrefix,
		onInitial:   cfg.Notifications.OnInitial,
		onError:     cfg.Notifications.OnError,
		heartbeat:   cfg.Notifications.Heartbeat,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one pass. The returned error is non-nil for extraction and
// state failures; notification failures are reported in Result.NotifyErr and
// never returned.
func (r *Reconciler) Run(ctx context.Context) (Result, error) {
	logger := logging.WithContext(ctx, r.logger)
	res := Result{URL: r.source.URL(), Timestamp: r.now()}

	current, err := r.source.Extract(ctx)
	if err != nil {
		res.Outcome = OutcomeExtractionFailed
		if !errors.Is(err, services.ErrExtraction) {
			err = services.Wrap(services.ErrExtraction, "reconciler", "extract", "", err)
		}
		logging.ErrorWithContext(logger, "signal extraction failed", "extraction_failed",
			logging.String(logging.FieldURL, res.URL),
			logging.String(logging.FieldField, r.source.Field()),
			logging.String("timestamp", formatTime(res.Timestamp)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the page is reachable and still carries the watched field"),
			logging.String(logging.FieldImpact, "state left untouched; no change detection this run"),
		)
		if r.onError {
			r.notify(ctx, logger, &res, errorEvent(r.titlePrefix, res, r.source.Field(), err))
		}
		return res, err
	}
	res.Current = current

	previous, ok, err := r.store.Read(ctx)
	if err != nil {
		logging.ErrorWithContext(logger, "state read failed", "state_read_failed",
			logging.String("location", r.store.Location()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the state path"),
		)
		return res, err
	}
	res.Previous, res.HadPrevious = previous, ok

	var event *notifications.Event
	switch {
	case !ok:
		res.Outcome = OutcomeNoPriorState
		if err := r.write(ctx, logger, &res); err != nil {
			return res, err
		}
		if r.onInitial {
			ev := initialEvent(r.titlePrefix, res)
			event = &ev
		}
	case current.Kind == signals.KindScalar && current.Empty() && !previous.Empty():
		// A vanished link keeps the recorded value so it cannot later read as a change.
		res.Outcome = OutcomeUnchanged
		logging.WarnWithContext(logger, "watched value not found on page; keeping recorded value", "signal_absent",
			logging.String(logging.FieldURL, res.URL),
			logging.String("recorded", previous.String()),
			logging.String(logging.FieldImpact, "state not overwritten"),
		)
		if r.heartbeat {
			ev := heartbeatEvent(r.titlePrefix, res)
			event = &ev
		}
	case current.SameKey(previous):
		res.Outcome = OutcomeUnchanged
		if err := r.write(ctx, logger, &res); err != nil {
			return res, err
		}
		if r.heartbeat {
			ev := heartbeatEvent(r.titlePrefix, res)
			event = &ev
		}
	default:
		res.Outcome = OutcomeChanged
		if err := r.write(ctx, logger, &res); err != nil {
			return res, err
		}
		ev := changeEvent(r.titlePrefix, res)
		event = &ev
	}

	logger.Info("watch pass complete",
		logging.String(logging.FieldOutcome, string(res.Outcome)),
		logging.String("previous", previous.String()),
		logging.Bool("had_previous", ok),
		logging.String("current", current.String()),
		logging.String(logging.FieldURL, res.URL),
	)

	if event != nil {
		r.notify(ctx, logger, &res, *event)
	}
	return res, nil
}

func (r *Reconciler) write(ctx context.Context, logger *slog.Logger, res *Result) error {
	if err := r.store.Write(ctx, res.Current); err != nil {
		logging.ErrorWithContext(logger, "state write failed", "state_write_failed",
			logging.String("location", r.store.Location()),
			logging.String(logging.FieldOutcome, string(res.Outcome)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check free space and permissions on the state path"),
			logging.String(logging.FieldImpact, "no notification sent; next run repeats detection"),
		)
		return err
	}
	res.Wrote = true
	return nil
}

func (r *Reconciler) notify(ctx context.Context, logger *slog.Logger, res *Result, event notifications.Event) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Notify(ctx, event); err != nil {
		res.NotifyErr = err
		logging.WarnWithContext(logger, "notification failed", "notification_failed",
			logging.String("notification_kind", string(event.Kind)),
			logging.Error(err),
			logging.String(logging.FieldImpact, "outcome unchanged; recorded state already updated"),
		)
		return
	}
	res.Notified = true
}
