package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/ai"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/assistant"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/config"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/delivery"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/doc"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/domain"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/infra"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/notificator"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/pdf"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/ports"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/session"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/speech"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/telegram"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	sugar := baseLogger.Sugar()
	zl := logger.NewZapLogger(sugar)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	var artifacts ports.ArtifactService
	if cfg.S3.Enabled() {
		s3Client, err := infra.NewS3Client(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
		artifacts = domain.NewArtifactService(s3Client, sugar)
	}

	notifyInfra := notificator.NewInfra(nil, cfg.Telegram.AdminChatIDs, sugar)
	notifier := notificator.NewService(notifyInfra)

	// =========================================================================
	// CLIENTS (LLM / STT / TTS)
	// =========================================================================

	var llm ai.Completer
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		llm = ai.NewOpenAIClient(cfg.LLM.OpenAIKey, cfg.LLM.OpenAIBaseURL, cfg.LLM.OpenAIModel)
	default:
		gemini, err := ai.NewGeminiClient(ctx, cfg.LLM.GoogleAPIKey, cfg.LLM.GeminiModel)
		if err != nil {
			log.Fatalf("failed to init gemini: %v", err)
		}
		defer gemini.Close()
		llm = gemini
	}

	var stt speech.STTClient
	switch cfg.Speech.STTProvider {
	case config.STTDeepgram:
		stt = speech.NewDeepgramClient(cfg.Speech.DeepgramAPIKey)
	default:
		stt = speech.NewWhisperClient(cfg.LLM.OpenAIKey, cfg.LLM.OpenAIBaseURL)
	}

	var tts speech.TTSClient
	if cfg.Speech.ElevenLabsAPIKey != "" {
		tts = speech.NewElevenLabsClient(cfg.Speech.ElevenLabsAPIKey, cfg.Speech.ElevenLabsVoiceID)
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	pdfService := pdf.NewPDFService(pdf.NewLedongthucExtractor())
	docService := doc.NewService(doc.NewPDFConverter(pdfService), doc.NewDocxConverter(), sugar)
	speechService := speech.NewService(stt, tts, sugar)

	tokenizer := ai.NewTokenizer(cfg.LLM.OpenAIModel, sugar)
	aiService := ai.NewService(llm, sugar,
		ai.WithDocBudget(tokenizer, cfg.LLM.DocTokenBudget),
		ai.WithTimeout(cfg.LLM.Timeout),
	)

	sessions := session.NewStore(cfg.Quota.DailyLimit)
	asst := assistant.NewService(docService, speechService, aiService, artifacts, notifier, sugar)

	// =========================================================================
	// TELEGRAM BOT
	// =========================================================================

	if cfg.Telegram.BotToken != "" {
		botApp := telegram.NewBotApp(asst, sessions, cfg.Telegram.AdminChatIDs, sugar)
		bot, err := botApp.InitBot(ctx, cfg.Telegram.BotToken)
		if err != nil {
			log.Fatalf("failed to init telegram bot: %v", err)
		}
		notifyInfra.SetBot(bot)
	}

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	handler := delivery.NewSessionHandler(asst, sessions, zl)
	r := delivery.NewRouter(handler, delivery.RouterConfig{
		APIToken:        cfg.Server.APIToken,
		RateLimitPerMin: cfg.Server.RateLimitPerMin,
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr + " llm=" + llm.Provider(),
		Service: "document-filling-agent",
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
