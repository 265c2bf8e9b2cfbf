package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const userAgent = "PageWatch/1.0"

// ntfySender publishes to an ntfy topic. ntfy:// maps to http and ntfys:// to
// https; plain http(s) URLs are used as given.
type ntfySender struct {
	endpoint string
	username string
	password string
	client   *http.Client
}

func newNtfySender(destination string, timeout time.Duration) (*ntfySender, error) {
	u, err := url.Parse(destination)
	if err != nil {
		return nil, configError(destination, "invalid url")
	}
	switch strings.ToLower(u.Scheme) {
	case "ntfy":
		u.Scheme = "http"
	case "ntfys":
		u.Scheme = "https"
	}
	if u.Host == "" {
		return nil, configError(destination, "missing host")
	}
	if strings.Trim(u.Path, "/") == "" {
		return nil, configError(destination, "missing topic")
	}
	sender := &ntfySender{client: &http.Client{Timeout: timeout}}
	if u.User != nil {
		sender.username = u.User.Username()
		sender.password, _ = u.User.Password()
		u.User = nil
	}
	sender.endpoint = u.String()
	return sender, nil
}

func (n *ntfySender) label() string { return redact(n.endpoint) }

func (n *ntfySender) send(ctx context.Context, event Event) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(event.Body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if title := strings.TrimSpace(event.Title); title != "" {
		req.Header.Set("Title", title)
	}
	req.Header.Set("Tags", strings.Join(event.tags(), ","))
	if priority := event.priority(); priority != "" {
		req.Header.Set("Priority", priority)
	}
	if n.username != "" {
		req.SetBasicAuth(n.username, n.password)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
