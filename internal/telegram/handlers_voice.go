package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (app *BotApp) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	fileID, filename := "", "voice.ogg"
	switch {
	case msg.Voice != nil:
		fileID = msg.Voice.FileID
	case msg.Audio != nil:
		fileID = msg.Audio.FileID
		if msg.Audio.FileName != "" {
			filename = msg.Audio.FileName
		}
	}

	app.log.Infow("[voice] start", "chat", chatID, "file", fileID)

	audio, err := app.download(ctx, fileID)
	if err != nil {
		app.log.Warnw("[voice] download fail", "chat", chatID, "error", err)
		app.reply(chatID, "⚠️ Could not download the voice message.")
		return
	}

	done := app.thinking(chatID, "🎧 Listening…")
	st := app.Sessions.GetOrCreate(sessionID(chatID))
	res := app.Assistant.HandleVoice(ctx, st, audio, filename)
	done()

	app.sendResult(chatID, res)
	app.log.Infow("[voice] done", "chat", chatID, "outcome", res.Outcome)
}
