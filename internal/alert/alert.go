// Package alert pushes unexpected server errors to a Telegram chat so
// operators hear about 5xx responses without tailing logs.
package alert

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Event captures the request context of a failed call.
type Event struct {
	Method string
	Path   string
	UserID uint
	Err    error
}

// Notifier sends events to a configured chat. A nil Notifier is valid and
// drops everything, so callers never need to branch on configuration.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// New builds a notifier, or nil when no token is configured.
func New(token string, chatID int64) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &Notifier{api: api, chatID: chatID}, nil
}

// Notify reports one event. Delivery failures are returned, not retried.
func (n *Notifier) Notify(event Event) error {
	if n == nil {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("🚨 <b>server error</b>\n")
	sb.WriteString(fmt.Sprintf("• request: <code>%s %s</code>\n", event.Method, html.EscapeString(event.Path)))
	if event.UserID != 0 {
		sb.WriteString(fmt.Sprintf("• user: %d\n", event.UserID))
	}
	if event.Err != nil {
		sb.WriteString(fmt.Sprintf("• error: %s", html.EscapeString(event.Err.Error())))
	}

	msg := tgbotapi.NewMessage(n.chatID, sb.String())
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send alert: %w", err)
	}
	return nil
}
