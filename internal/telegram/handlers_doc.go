package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (app *BotApp) handleDoc(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	doc := msg.Document

	app.log.Infow("[doc] start", "chat", chatID, "name", doc.FileName, "mime", doc.MimeType, "size", doc.FileSize)

	raw, err := app.download(ctx, doc.FileID)
	if err != nil {
		app.log.Warnw("[doc] download fail", "chat", chatID, "error", err)
		app.reply(chatID, "⚠️ Could not download the document.")
		return
	}

	done := app.thinking(chatID, "📄 Processing document…")
	st := app.Sessions.GetOrCreate(sessionID(chatID))
	res := app.Assistant.HandleUpload(ctx, st, doc.FileName, raw, doc.MimeType)
	done()

	app.sendResult(chatID, res)
}
