package notifications

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

// telegramSender posts through the Bot API. The destination format is
// tgram://TOKEN/CHATID[/CHATID...]; tokens contain a colon so the URI is split
// by hand instead of through net/url.
type telegramSender struct {
	token   string
	chatIDs []int64
	apiURL  string
	timeout time.Duration
}

func newTelegramSender(destination string, timeout time.Duration) (*telegramSender, error) {
	_, rest, _ := strings.Cut(destination, "://")
	rest, _, _ = strings.Cut(rest, "?")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return nil, configError(destination, "expected tgram://TOKEN/CHATID")
	}
	sender := &telegramSender{token: strings.TrimSpace(parts[0]), timeout: timeout}
	for _, raw := range parts[1:] {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, configError(destination, fmt.Sprintf("invalid chat id %q", raw))
		}
		sender.chatIDs = append(sender.chatIDs, id)
	}
	if len(sender.chatIDs) == 0 {
		return nil, configError(destination, "missing chat id")
	}
	return sender, nil
}

func (t *telegramSender) label() string { return "tgram://***" }

func (t *telegramSender) send(ctx context.Context, event Event) error {
	bot, err := tele.NewBot(tele.Settings{
		URL:     t.apiURL,
		Token:   t.token,
		Client:  &http.Client{Timeout: t.timeout},
		Offline: true,
	})
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}
	text := event.text()
	var errs []error
	for _, id := range t.chatIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := bot.Send(&tele.Chat{ID: id}, text, &tele.SendOptions{DisableWebPagePreview: true}); err != nil {
			errs = append(errs, fmt.Errorf("send telegram message to chat %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
