package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server   ServerConfig
	Telegram TelegramConfig
	LLM      LLMConfig
	Speech   SpeechConfig
	S3       S3Config
	Quota    QuotaConfig
}

type ServerConfig struct {
	Port            string
	APIToken        string
	RateLimitPerMin int
}

type TelegramConfig struct {
	BotToken     string
	AdminChatIDs []int64
}

type LLMConfig struct {
	Provider       string
	OpenAIKey      string
	OpenAIBaseURL  string
	OpenAIModel    string
	GoogleAPIKey   string
	GeminiModel    string
	Timeout        time.Duration
	DocTokenBudget int
}

type SpeechConfig struct {
	STTProvider       string
	DeepgramAPIKey    string
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

type QuotaConfig struct {
	DailyLimit int
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	STTWhisper     = "whisper"
	STTDeepgram    = "deepgram"
)

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			APIToken:        getEnv("API_TOKEN", ""),
			RateLimitPerMin: getEnvAsInt("RATE_LIMIT_PER_MIN", 60),
		},
		Telegram: TelegramConfig{
			BotToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
			AdminChatIDs: getEnvAsInt64Slice("ADMIN_CHAT_IDS"),
		},
		LLM: LLMConfig{
			Provider:       strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
			OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			GoogleAPIKey:   getEnv("GOOGLE_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
			Timeout:        getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
			DocTokenBudget: getEnvAsInt("DOC_TOKEN_BUDGET", 6000),
		},
		Speech: SpeechConfig{
			STTProvider:       strings.ToLower(getEnv("STT_PROVIDER", STTWhisper)),
			DeepgramAPIKey:    getEnv("DEEPGRAM_API_KEY", ""),
			ElevenLabsAPIKey:  getEnv("ELEVENLABS_API_KEY", ""),
			ElevenLabsVoiceID: getEnv("ELEVENLABS_VOICE_ID", ""),
		},
		S3: S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			UseSSL:    getEnv("S3_USE_SSL", "true") == "true",
		},
		Quota: QuotaConfig{
			DailyLimit: getEnvAsInt("QUOTA_DAILY_LIMIT", 20),
		},
	}
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is required for LLM_PROVIDER=openai", ErrInvalidConfig)
		}
	case ProviderGemini:
		if c.LLM.GoogleAPIKey == "" {
			return fmt.Errorf("%w: GOOGLE_API_KEY is required for LLM_PROVIDER=gemini", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown LLM_PROVIDER %q", ErrInvalidConfig, c.LLM.Provider)
	}

	switch c.Speech.STTProvider {
	case STTWhisper:
		if c.LLM.OpenAIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is required for STT_PROVIDER=whisper", ErrInvalidConfig)
		}
	case STTDeepgram:
		if c.Speech.DeepgramAPIKey == "" {
			return fmt.Errorf("%w: DEEPGRAM_API_KEY is required for STT_PROVIDER=deepgram", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown STT_PROVIDER %q", ErrInvalidConfig, c.Speech.STTProvider)
	}

	if c.Server.Port == "" && c.Telegram.BotToken == "" {
		return fmt.Errorf("%w: neither PORT nor TELEGRAM_BOT_TOKEN set", ErrInvalidConfig)
	}
	if c.Quota.DailyLimit < 1 {
		return fmt.Errorf("%w: QUOTA_DAILY_LIMIT must be positive", ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsInt64Slice parses a comma separated id list, skipping bad items.
func getEnvAsInt64Slice(key string) []int64 {
	var out []int64
	for _, part := range strings.Split(os.Getenv(key), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out
}
