package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/assistant"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/doc"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/session"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/speech"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/template"
)

type fakeBot struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	fileURL string
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeBot) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBot) GetFileDirectURL(fileID string) (string, error) {
	return f.fileURL + "/" + fileID, nil
}

func (f *fakeBot) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *fakeBot) documents() []tgbotapi.DocumentConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.DocumentConfig
	for _, c := range f.sent {
		if d, ok := c.(tgbotapi.DocumentConfig); ok {
			out = append(out, d)
		}
	}
	return out
}

func (f *fakeBot) reset() {
	f.mu.Lock()
	f.sent = nil
	f.mu.Unlock()
}

type stubSpeech struct{}

func (stubSpeech) Transcribe(context.Context, []byte, string) (speech.Transcript, error) {
	return speech.Transcript{Text: "My name is Ali", Lang: "en"}, nil
}

func (stubSpeech) Synthesize(context.Context, string, string) ([]byte, error) {
	return []byte("mp3"), nil
}

type stubLLM struct{}

func (stubLLM) ExtractInfo(context.Context, string) (template.Fields, error) {
	return template.Fields{{Key: "Full Name", Value: "Ali"}}, nil
}

func (stubLLM) Answer(context.Context, string, string) (string, error) {
	return "It is a letter.", nil
}

func newTestApp(t *testing.T, admins ...int64) (*BotApp, *fakeBot) {
	t.Helper()

	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/template":
			w.Write([]byte("Dear [Name], welcome."))
		default:
			w.Write([]byte("OggS"))
		}
	}))
	t.Cleanup(files.Close)

	log := zap.NewNop().Sugar()
	docs := doc.NewService(nil, nil, log)
	asst := assistant.NewService(docs, stubSpeech{}, stubLLM{}, nil, nil, log)

	app := NewBotApp(asst, session.NewStore(20), admins, log)
	bot := &fakeBot{fileURL: files.URL}
	app.bot = bot
	return app, bot
}

func command(chatID, fromID int64, text string) *tgbotapi.Message {
	name := strings.Fields(text)[0]
	return &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		From:     &tgbotapi.User{ID: fromID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}
}

func containsText(texts []string, sub string) bool {
	for _, s := range texts {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestUploadThenVoiceFills(t *testing.T) {
	app, bot := newTestApp(t)
	ctx := context.Background()
	chat := &tgbotapi.Chat{ID: 42}

	app.handleMessage(ctx, &tgbotapi.Message{
		Chat:     chat,
		Document: &tgbotapi.Document{FileID: "template", FileName: "t.txt", MimeType: "text/plain"},
	})
	if !containsText(bot.texts(), assistant.MsgTemplateLoaded) {
		t.Fatalf("template notice missing: %q", bot.texts())
	}

	bot.reset()
	app.handleMessage(ctx, &tgbotapi.Message{
		Chat:  chat,
		Voice: &tgbotapi.Voice{FileID: "voice"},
	})

	docs := bot.documents()
	if len(docs) != 1 {
		t.Fatalf("documents sent = %d, want 1", len(docs))
	}
	if fb, ok := docs[0].File.(tgbotapi.FileBytes); !ok || fb.Name != assistant.FilledFilename {
		t.Errorf("document = %+v", docs[0].File)
	}
	if !containsText(bot.texts(), "Full Name: Ali (synonym)") {
		t.Errorf("field summary missing: %q", bot.texts())
	}

	st, _ := app.Sessions.Get(sessionID(42))
	if st.FilledText != "Dear Ali, welcome." {
		t.Errorf("filled = %q", st.FilledText)
	}
}

func TestUnsupportedUpload(t *testing.T) {
	app, bot := newTestApp(t)

	app.handleMessage(context.Background(), &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 1},
		Document: &tgbotapi.Document{FileID: "x", FileName: "a.png", MimeType: "image/png"},
	})
	if !containsText(bot.texts(), doc.UnsupportedMessage) {
		t.Errorf("texts = %q", bot.texts())
	}
}

func TestCommands(t *testing.T) {
	app, bot := newTestApp(t, 7)
	ctx := context.Background()

	app.handleMessage(ctx, &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "what is this?"})
	if !containsText(bot.texts(), "It is a letter.") {
		t.Fatalf("answer missing: %q", bot.texts())
	}

	bot.reset()
	app.handleMessage(ctx, command(1, 5, "/quota"))
	if !containsText(bot.texts(), "Requests Used: 1 / 20") {
		t.Errorf("quota text = %q", bot.texts())
	}

	bot.reset()
	app.handleMessage(ctx, command(1, 5, "/resetquota"))
	if !containsText(bot.texts(), "Only admins") {
		t.Errorf("non-admin reset = %q", bot.texts())
	}

	bot.reset()
	app.handleMessage(ctx, command(1, 7, "/resetquota"))
	st, _ := app.Sessions.Get(sessionID(1))
	if u := st.Quota.Remaining(); u.Used != 0 {
		t.Errorf("used after admin reset = %d", u.Used)
	}

	bot.reset()
	app.handleMessage(ctx, command(1, 5, "/history"))
	if !containsText(bot.texts(), "👤 what is this?") {
		t.Errorf("history = %q", bot.texts())
	}

	bot.reset()
	app.handleMessage(ctx, command(1, 5, "/clear"))
	if len(st.History) != 0 {
		t.Error("clear did not drop history")
	}

	bot.reset()
	app.handleMessage(ctx, command(1, 5, "/download"))
	if !containsText(bot.texts(), "Nothing to download") {
		t.Errorf("download = %q", bot.texts())
	}
}

func TestFormatFields(t *testing.T) {
	res := assistant.Result{
		Fields:  template.Fields{{Key: "Company", Value: "Radiant"}},
		Matches: []template.Match{{Key: "Company", Tier: template.TierExact}},
	}
	want := "📋 Extracted information:\n• Company: Radiant (exact)"
	if got := FormatFields(res); got != want {
		t.Errorf("FormatFields = %q", got)
	}
}

func TestChunkText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		limit  int
		want   int
		joined string
	}{
		{"short", "hello", 10, 1, "hello"},
		{"breaks at newline", "aaaa\nbbbb\ncc", 10, 2, "aaaa\nbbbb\ncc"},
		{"hard cut", strings.Repeat("x", 25), 10, 3, strings.Repeat("x", 25)},
		{"surrogate pairs", strings.Repeat("😀", 6), 5, 3, strings.Repeat("😀", 6)},
		{"empty", "", 10, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunkText(tt.text, tt.limit)
			if len(got) != tt.want {
				t.Fatalf("chunks = %q, want %d", got, tt.want)
			}
			for _, c := range got {
				if n := len(utf16.Encode([]rune(c))); n > tt.limit {
					t.Errorf("chunk %q is %d units", c, n)
				}
			}
			sep := ""
			if strings.Contains(tt.text, "\n") {
				sep = "\n"
			}
			if j := strings.Join(got, sep); j != tt.joined {
				t.Errorf("joined = %q, want %q", j, tt.joined)
			}
		})
	}
}

func TestLongReplyIsSplit(t *testing.T) {
	app, bot := newTestApp(t)

	text := strings.Repeat("line of filled text\n", 400)
	app.reply(1, text)

	texts := bot.texts()
	if len(texts) < 2 {
		t.Fatalf("sent %d messages, want several", len(texts))
	}
	for _, s := range texts {
		if len(s) > maxMessageLen {
			t.Errorf("message of %d bytes exceeds limit", len(s))
		}
	}
	if got := strings.Join(texts, "\n"); got != strings.TrimRight(text, "\n") {
		t.Error("split reply lost text")
	}
}
