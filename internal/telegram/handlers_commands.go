package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/session"
)

const helpText = `Welcome to the Intelligent Voice & Document Assistant.

1. Upload a PDF or DOCX file.
2. Send a voice message (or type).

Templates with [Field] placeholders get filled from what you say. Other documents can be asked about.

/clear - start a new session
/quota - API usage for today
/history - conversation so far
/download - resend the filled document`

func (app *BotApp) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start", "help":
		app.reply(chatID, helpText)
	case "clear", "new":
		app.handleClear(chatID)
	case "quota", "stats":
		app.handleQuota(chatID)
	case "resetquota":
		app.handleResetQuota(chatID, msg.From)
	case "history":
		app.handleHistory(chatID)
	case "download":
		app.handleDownload(chatID)
	default:
		app.reply(chatID, "Unknown command. Try /help.")
	}
}

func (app *BotApp) handleClear(chatID int64) {
	st := app.Sessions.GetOrCreate(sessionID(chatID))
	st.Lock()
	st.Clear()
	st.Unlock()

	app.log.Infow("[cmd] session cleared", "chat", chatID)
	app.reply(chatID, "🔄 New session started.")
}

func (app *BotApp) handleQuota(chatID int64) {
	st := app.Sessions.GetOrCreate(sessionID(chatID))
	st.Lock()
	u := st.Quota.Remaining()
	st.Unlock()

	app.reply(chatID, fmt.Sprintf("📊 API Usage\nRequests Used: %d / %d\nRemaining: %d", u.Used, u.Total, u.Remaining))
}

func (app *BotApp) handleResetQuota(chatID int64, from *tgbotapi.User) {
	if from == nil || !app.admins[from.ID] {
		app.reply(chatID, "⛔ Only admins can reset the quota.")
		return
	}

	st := app.Sessions.GetOrCreate(sessionID(chatID))
	st.Lock()
	st.Quota.Reset()
	st.QuotaExceeded = false
	st.Unlock()

	app.log.Infow("[cmd] quota reset", "chat", chatID, "by", from.ID)
	app.reply(chatID, "🔧 Quota reset.")
}

func (app *BotApp) handleHistory(chatID int64) {
	st := app.Sessions.GetOrCreate(sessionID(chatID))
	st.Lock()
	v := st.View()
	st.Unlock()

	if len(v.History) == 0 {
		app.reply(chatID, "No conversation yet.")
		return
	}

	var b strings.Builder
	for _, m := range v.History {
		icon := "👤"
		if m.Role != session.RoleUser {
			icon = "🤖"
		}
		fmt.Fprintf(&b, "%s %s\n", icon, m.Text)
	}
	if v.FilledText != "" {
		b.WriteString("\n📝 Filled document:\n")
		b.WriteString(v.FilledText)
	}
	app.reply(chatID, strings.TrimSpace(b.String()))
}

func (app *BotApp) handleDownload(chatID int64) {
	st := app.Sessions.GetOrCreate(sessionID(chatID))
	st.Lock()
	data := append([]byte(nil), st.DocBuffer...)
	url := st.FilledURL
	st.Unlock()

	if len(data) == 0 {
		app.reply(chatID, "Nothing to download yet. Fill a template first.")
		return
	}
	app.sendDocx(chatID, data, url)
}
