package telegram

import (
	"context"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// runBotLoop polls updates and handles each one in its own goroutine.
func (app *BotApp) runBotLoop(ctx context.Context, bot *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := bot.GetUpdatesChan(u)
	app.log.Infow("[bot_loop] started", "username", bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			app.log.Infow("[bot_loop] stopped")
			return

		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			go app.handleMessage(ctx, update.Message)
		}
	}
}

func (app *BotApp) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	app.log.Debugw("[bot_touch] message", "chat", chatID, "message", msg.MessageID)

	if msg.IsCommand() {
		app.handleCommand(ctx, msg)
		return
	}

	switch strings.TrimSpace(msg.Text) {
	case btnNewSession:
		app.handleClear(chatID)
		return
	case btnStats:
		app.handleQuota(chatID)
		return
	case btnHistory:
		app.handleHistory(chatID)
		return
	case btnDownload:
		app.handleDownload(chatID)
		return
	}

	switch {
	case msg.Voice != nil:
		app.handleVoice(ctx, msg)
	case msg.Audio != nil:
		app.handleVoice(ctx, msg)
	case msg.Document != nil:
		app.handleDoc(ctx, msg)
	case msg.Text != "":
		app.handleText(ctx, msg)
	default:
		app.reply(chatID, "📎 Send a PDF or DOCX document, a voice message or a text question.")
	}
}

// maxMessageLen is Telegram's text limit, counted in UTF-16 units.
const maxMessageLen = 4096

func (app *BotApp) reply(chatID int64, text string) {
	chunks := chunkText(text, maxMessageLen)
	for i, chunk := range chunks {
		m := tgbotapi.NewMessage(chatID, chunk)
		if i == len(chunks)-1 {
			m.ReplyMarkup = BuildMainKeyboard()
		}
		if _, err := app.bot.Send(m); err != nil {
			app.log.Warnw("[bot] send fail", "chat", chatID, "chunk", i, "chunks", len(chunks), "error", err)
			return
		}
	}
}

// chunkText splits text into pieces of at most limit UTF-16 units,
// breaking after the last newline in range when there is one.
func chunkText(text string, limit int) []string {
	var out []string
	for text != "" {
		n, cut, lastNL := 0, len(text), -1
		for i, r := range text {
			l := utf16.RuneLen(r)
			if l < 0 {
				l = 1
			}
			if n+l > limit {
				cut = i
				break
			}
			n += l
			if r == '\n' {
				lastNL = i + 1
			}
		}
		if cut < len(text) && lastNL > 0 {
			cut = lastNL
		}
		if cut == 0 {
			_, size := utf8.DecodeRuneInString(text)
			cut = size
		}

		if chunk := strings.TrimRight(text[:cut], "\n"); chunk != "" {
			out = append(out, chunk)
		}
		text = text[cut:]
	}
	return out
}

// thinking posts a progress note and returns a func that removes it.
func (app *BotApp) thinking(chatID int64, text string) func() {
	sent, err := app.bot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return func() {}
	}
	return func() {
		app.bot.Request(tgbotapi.NewDeleteMessage(chatID, sent.MessageID))
	}
}
