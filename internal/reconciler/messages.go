package reconciler

import (
	"fmt"
	"strings"
	"time"

	"pagewatch/internal/notifications"
	"pagewatch/internal/signals"
)

const timestampLayout = "2006-01-02 15:04:05"

func title(prefix, suffix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return suffix
	}
	return prefix + ": " + suffix
}

func changeEvent(prefix string, res Result) notifications.Event {
	body := fmt.Sprintf("[%s] Change detected\nPrevious: %s\nCurrent:  %s\nURL: %s",
		res.Timestamp.Format(timestampLayout), res.Previous, res.Current, res.URL)
	return notifications.Event{
		Kind:      notifications.KindChanged,
		Title:     title(prefix, "change detected"),
		Body:      body,
		Timestamp: res.Timestamp,
	}
}

func initialEvent(prefix string, res Result) notifications.Event {
	body := fmt.Sprintf("[%s] Initial state recorded\n%s\nURL: %s",
		res.Timestamp.Format(timestampLayout), res.Current, res.URL)
	return notifications.Event{
		Kind:      notifications.KindInitial,
		Title:     title(prefix, "initial state recorded"),
		Body:      body,
		Timestamp: res.Timestamp,
	}
}

func heartbeatEvent(prefix string, res Result) notifications.Event {
	body := fmt.Sprintf("[%s] No change\n%s\nURL: %s",
		res.Timestamp.Format(timestampLayout), displayed(res), res.URL)
	return notifications.Event{
		Kind:      notifications.KindHeartbeat,
		Title:     title(prefix, "no change"),
		Body:      body,
		Timestamp: res.Timestamp,
	}
}

func errorEvent(prefix string, res Result, field string, err error) notifications.Event {
	body := fmt.Sprintf("[%s] Failed to read %s: %v\nURL: %s",
		res.Timestamp.Format(timestampLayout), field, err, res.URL)
	return notifications.Event{
		Kind:      notifications.KindError,
		Title:     title(prefix, "ERROR"),
		Body:      body,
		Timestamp: res.Timestamp,
	}
}

// displayed is the value an UNCHANGED run reports: the recorded one when the
// page no longer shows a value.
func displayed(res Result) signals.Signal {
	if res.Current.Empty() && res.HadPrevious {
		return res.Previous
	}
	return res.Current
}

// Summary renders the single human-readable line printed after a run.
func (r Result) Summary() string {
	ts := r.Timestamp.Format(timestampLayout)
	switch r.Outcome {
	case OutcomeChanged:
		return fmt.Sprintf("[%s] %s: %s -> %s (%s)", ts, r.Outcome.Label(), r.Previous, r.Current, r.URL)
	case OutcomeUnchanged:
		return fmt.Sprintf("[%s] %s: %s (%s)", ts, r.Outcome.Label(), displayed(r), r.URL)
	case OutcomeNoPriorState:
		return fmt.Sprintf("[%s] %s: recorded %s (%s)", ts, r.Outcome.Label(), r.Current, r.URL)
	default:
		return fmt.Sprintf("[%s] %s (%s)", ts, r.Outcome.Label(), r.URL)
	}
}

func formatTime(t time.Time) string { return t.Format(time.RFC3339) }
