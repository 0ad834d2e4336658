package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	btnNewSession = "🔄 New Session"
	btnStats      = "📊 Stats"
	btnHistory    = "🗂 History"
	btnDownload   = "📥 Download"
)

func BuildMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	row1 := tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnNewSession),
		tgbotapi.NewKeyboardButton(btnStats),
	)
	row2 := tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnHistory),
		tgbotapi.NewKeyboardButton(btnDownload),
	)

	kb := tgbotapi.NewReplyKeyboard(row1, row2)
	kb.ResizeKeyboard = true
	return kb
}
