package notificator

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notificator interface {
	// Notify alerts the admins about a failure in source.
	Notify(ctx context.Context, source string, err error, details string) error
	UserNotify(ctx context.Context, chatID int64, text string) error
}

// Sender is the part of *tgbotapi.BotAPI used here.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}
