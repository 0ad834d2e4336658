package notificator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

var ErrNoBot = errors.New("notificator: bot not set")

type Infra struct {
	mu     sync.RWMutex
	bot    Sender
	admins []int64
	log    *zap.SugaredLogger
}

func NewInfra(bot Sender, admins []int64, log *zap.SugaredLogger) *Infra {
	return &Infra{bot: bot, admins: admins, log: log}
}

// SetBot wires the bot after it has been initialised.
func (i *Infra) SetBot(bot Sender) {
	i.mu.Lock()
	i.bot = bot
	i.mu.Unlock()
}

func (i *Infra) sender() Sender {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.bot
}

func (i *Infra) Notify(ctx context.Context, source string, err error, details string) error {
	i.log.Errorw("[notificator] "+source, "error", err, "details", details)

	bot := i.sender()
	if bot == nil {
		return nil
	}

	text := fmt.Sprintf("❗ Error in %s\n\nError: %v\n\nDetails: %s", source, err, details)

	var errs []error
	for _, chatID := range i.admins {
		if _, sendErr := bot.Send(tgbotapi.NewMessage(chatID, text)); sendErr != nil {
			i.log.Warnw("[notificator] send fail", "chat", chatID, "error", sendErr)
			errs = append(errs, sendErr)
		}
	}
	return errors.Join(errs...)
}

func (i *Infra) UserNotify(ctx context.Context, chatID int64, text string) error {
	bot := i.sender()
	if bot == nil {
		return ErrNoBot
	}
	_, err := bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
