package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/assistant"
)

// sendResult renders a finished turn into chat messages.
func (app *BotApp) sendResult(chatID int64, res assistant.Result) {
	if res.PreviousAudioError != "" {
		app.reply(chatID, "❌ "+res.PreviousAudioError)
	}

	if res.Transcript != "" && res.Outcome != assistant.OutcomeAnswered {
		app.reply(chatID, "🗣 "+res.Transcript)
	}

	switch res.Outcome {
	case assistant.OutcomeTemplateLoaded, assistant.OutcomeDocumentLoaded:
		app.reply(chatID, "✅ Document processed successfully!\n👉 "+res.Message)

	case assistant.OutcomeFilled:
		app.reply(chatID, FormatFields(res)+"\n\n✅ "+res.Message)
		app.sendDocx(chatID, res.Docx, res.DocxURL)

	case assistant.OutcomeAnswered:
		app.reply(chatID, res.Answer)
		if len(res.Audio) > 0 {
			audio := tgbotapi.NewAudio(chatID, tgbotapi.FileBytes{Name: "answer.mp3", Bytes: res.Audio})
			if _, err := app.bot.Send(audio); err != nil {
				app.log.Warnw("[bot] audio send fail", "chat", chatID, "error", err)
			}
		}

	case assistant.OutcomeNothingExtracted:
		app.reply(chatID, "⚠️ "+res.Message)

	default:
		app.reply(chatID, "❌ "+res.Message)
	}
}

func (app *BotApp) sendDocx(chatID int64, data []byte, url string) {
	d := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: assistant.FilledFilename, Bytes: data})
	if url != "" {
		d.Caption = url
	}
	if _, err := app.bot.Send(d); err != nil {
		app.log.Warnw("[bot] document send fail", "chat", chatID, "error", err)
	}
}

// FormatFields lists what was extracted and where it landed.
func FormatFields(res assistant.Result) string {
	var b strings.Builder
	b.WriteString("📋 Extracted information:")
	for i, f := range res.Fields {
		tier := ""
		if i < len(res.Matches) {
			tier = string(res.Matches[i].Tier)
		}
		fmt.Fprintf(&b, "\n• %s: %s (%s)", f.Key, f.Value, tier)
	}
	return b.String()
}
