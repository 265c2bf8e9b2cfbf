package notifications

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pagewatch/internal/services"
)

// ParseDestinations splits a comma or newline separated list, trimming blanks
// and dropping duplicates while keeping order.
func ParseDestinations(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\n", ",")
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

// sender delivers one event to one destination.
type sender interface {
	send(ctx context.Context, event Event) error
	// label is a redacted description safe for logs.
	label() string
}

func newSender(destination string, timeout time.Duration) (sender, error) {
	scheme, _, ok := strings.Cut(destination, "://")
	if !ok {
		return nil, configError(destination, "missing scheme")
	}
	switch strings.ToLower(scheme) {
	case "ntfy", "ntfys", "http", "https":
		return newNtfySender(destination, timeout)
	case "tgram":
		return newTelegramSender(destination, timeout)
	case "mailto", "mailtos":
		return newMailSender(destination, timeout)
	default:
		return nil, configError(destination, fmt.Sprintf("unsupported scheme %q", scheme))
	}
}

func configError(destination, reason string) error {
	return services.Wrap(services.ErrConfiguration, "notifications", "parse destination", redact(destination)+": "+reason, nil)
}

// redact keeps the scheme and host of a destination and drops credentials,
// tokens, and paths.
func redact(destination string) string {
	scheme, rest, ok := strings.Cut(destination, "://")
	if !ok {
		return "<invalid>"
	}
	if strings.EqualFold(scheme, "tgram") {
		return "tgram://***"
	}
	if u, err := url.Parse(destination); err == nil && u.Host != "" {
		return u.Scheme + "://" + u.Hostname()
	}
	host, _, _ := strings.Cut(rest, "/")
	if at := strings.LastIndex(host, "@"); at >= 0 {
		host = host[at+1:]
	}
	return scheme + "://" + host
}
