package speech

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	LangEnglish = "en"
	LangUrdu    = "ur"
)

// markers that flip the reply language to Urdu
var urduMarkers = []string{"urdu", "اردو", "میں", "آپ", "ہے"}

// DetectLanguage is a keyword heuristic: "ur" when any Urdu marker appears
// in the lowercased transcript, "en" otherwise.
func DetectLanguage(text string) string {
	lower := strings.ToLower(text)
	for _, m := range urduMarkers {
		if strings.Contains(lower, m) {
			return LangUrdu
		}
	}
	return LangEnglish
}

// SupportedLang maps anything unknown to English.
func SupportedLang(lang string) string {
	switch lang {
	case LangEnglish, LangUrdu:
		return lang
	}
	return LangEnglish
}

// === STT + TTS behind one service ===

type Service struct {
	stt STTClient
	tts TTSClient
	log *zap.SugaredLogger
}

func NewService(stt STTClient, tts TTSClient, log *zap.SugaredLogger) *Service {
	return &Service{
		stt: stt,
		tts: tts,
		log: log,
	}
}

func (s *Service) Transcribe(ctx context.Context, audio []byte, filename string) (Transcript, error) {
	if len(audio) == 0 {
		return Transcript{}, fmt.Errorf("empty audio: %w", ErrNoSpeech)
	}

	text, err := s.stt.Transcribe(ctx, audio, filename)
	if err != nil {
		s.log.Warnw("[speech] transcribe fail", "bytes", len(audio), "error", err)
		return Transcript{}, fmt.Errorf("transcribe: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Transcript{}, ErrNoSpeech
	}

	lang := DetectLanguage(text)
	s.log.Infow("[speech] transcribed", "chars", len(text), "lang", lang)
	return Transcript{Text: text, Lang: lang}, nil
}

func (s *Service) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if s.tts == nil {
		return nil, fmt.Errorf("tts not configured")
	}

	audio, err := s.tts.Synthesize(ctx, text, SupportedLang(lang))
	if err != nil {
		s.log.Warnw("[speech] synth fail", "chars", len(text), "lang", lang, "error", err)
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	return audio, nil
}
