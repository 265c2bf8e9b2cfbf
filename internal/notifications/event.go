package notifications

import (
	"strings"
	"time"
)

// Kind identifies the purpose of a notification. Transports use it to pick
// tags and priority.
type Kind string

const (
	KindChanged   Kind = "changed"
	KindInitial   Kind = "initial"
	KindHeartbeat Kind = "heartbeat"
	KindError     Kind = "error"
	KindTest      Kind = "test"
)

// Event is an ephemeral message handed to the notifier and then discarded.
type Event struct {
	Kind      Kind
	Title     string
	Body      string
	Timestamp time.Time
}

// TestEvent builds the message sent by `pagewatch test-notify`.
func TestEvent(prefix string, now time.Time) Event {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "PageWatch"
	}
	return Event{
		Kind:      KindTest,
		Title:     prefix + ": test",
		Body:      "Notification system test",
		Timestamp: now,
	}
}

func (e Event) text() string {
	title := strings.TrimSpace(e.Title)
	body := strings.TrimSpace(e.Body)
	switch {
	case title == "":
		return body
	case body == "":
		return title
	default:
		return title + "\n\n" + body
	}
}

func (e Event) tags() []string {
	tags := []string{"pagewatch"}
	if e.Kind != "" {
		tags = append(tags, string(e.Kind))
	}
	return tags
}

func (e Event) priority() string {
	switch e.Kind {
	case KindChanged, KindError:
		return "high"
	case KindHeartbeat, KindTest:
		return "low"
	default:
		return ""
	}
}
