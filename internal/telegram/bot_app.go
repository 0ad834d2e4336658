package telegram

import (
	"context"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/assistant"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/session"
)

// Bot is the part of *tgbotapi.BotAPI the handlers use.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type BotApp struct {
	Assistant *assistant.Service
	Sessions  *session.Store

	bot    Bot
	admins map[int64]bool
	http   *http.Client
	log    *zap.SugaredLogger
}

func NewBotApp(
	asst *assistant.Service,
	sessions *session.Store,
	adminChatIDs []int64,
	log *zap.SugaredLogger,
) *BotApp {
	admins := make(map[int64]bool, len(adminChatIDs))
	for _, id := range adminChatIDs {
		admins[id] = true
	}
	return &BotApp{
		Assistant: asst,
		Sessions:  sessions,
		admins:    admins,
		http:      &http.Client{Timeout: 60 * time.Second},
		log:       log,
	}
}

// InitBot connects with token and starts polling until ctx is done.
func (app *BotApp) InitBot(ctx context.Context, token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	app.bot = bot
	app.log.Infow("[bot_app] ready", "username", bot.Self.UserName)

	go app.runBotLoop(ctx, bot)
	return bot, nil
}

func sessionID(chatID int64) string {
	return "tg-" + strconv.FormatInt(chatID, 10)
}
