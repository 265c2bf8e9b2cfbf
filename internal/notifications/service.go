package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pagewatch/internal/config"
	"pagewatch/internal/logging"
	"pagewatch/internal/services"
)

// Service delivers events to every configured destination.
type Service interface {
	Notify(ctx context.Context, event Event) error
	// Destinations returns redacted labels for the configured destinations.
	Destinations() []string
}

// NewService parses the configured destination list and builds a fan-out
// service. When no destinations are configured a logging-only service is
// returned. An unparsable destination is a configuration error.
func NewService(cfg *config.Config, logger *slog.Logger) (Service, error) {
	logger = logging.NewComponentLogger(logger, "notifications")
	destinations := ParseDestinations(cfg.Notifications.Destinations)
	if len(destinations) == 0 {
		return noopService{logger: logger}, nil
	}

	timeout := cfg.NotifyTimeout()
	senders := make([]sender, 0, len(destinations))
	for _, dest := range destinations {
		s, err := newSender(dest, timeout)
		if err != nil {
			return nil, err
		}
		senders = append(senders, s)
	}
	return &fanoutService{senders: senders, timeout: timeout, logger: logger}, nil
}

type fanoutService struct {
	senders []sender
	timeout time.Duration
	logger  *slog.Logger
}

func (f *fanoutService) Destinations() []string {
	labels := make([]string, 0, len(f.senders))
	for _, s := range f.senders {
		labels = append(labels, s.label())
	}
	return labels
}

// Notify attempts every destination even after a failure and reports all
// failures together.
func (f *fanoutService) Notify(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	var errs []error
	for _, s := range f.senders {
		if err := f.deliver(ctx, s, event); err != nil {
			logging.WarnWithContext(f.logger, "notification delivery failed", "notification_failed",
				logging.String("destination", s.label()),
				logging.String("notification_kind", string(event.Kind)),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the destination URI and network reachability"),
				logging.String(logging.FieldImpact, "this destination did not receive the notification"),
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.label(), err))
			continue
		}
		f.logger.Debug("notification delivered",
			logging.String("destination", s.label()),
			logging.String("notification_kind", string(event.Kind)),
		)
	}
	if len(errs) == 0 {
		return nil
	}
	return services.Wrap(
		services.ErrNotificationDelivery,
		"notifications",
		"notify",
		fmt.Sprintf("%d of %d destinations failed", len(errs), len(f.senders)),
		errors.Join(errs...),
	)
}

func (f *fanoutService) deliver(ctx context.Context, s sender, event Event) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	return s.send(ctx, event)
}

type noopService struct {
	logger *slog.Logger
}

func (n noopService) Notify(_ context.Context, event Event) error {
	logging.WarnWithContext(n.logger, "notifications disabled: no destinations configured", "notification_skipped",
		logging.String("notification_kind", string(event.Kind)),
		logging.String("title", event.Title),
		logging.String(logging.FieldErrorHint, "set notifications.destinations to receive alerts"),
		logging.String(logging.FieldImpact, "outcome is recorded in logs only"),
	)
	return nil
}

func (noopService) Destinations() []string { return nil }
