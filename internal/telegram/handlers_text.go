package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (app *BotApp) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	done := app.thinking(chatID, "🤖 Thinking…")
	st := app.Sessions.GetOrCreate(sessionID(chatID))
	res := app.Assistant.HandleText(ctx, st, msg.Text)
	done()

	app.sendResult(chatID, res)
	app.log.Infow("[text] done", "chat", chatID, "outcome", res.Outcome)
}
