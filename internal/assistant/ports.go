package assistant

import (
	"context"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/speech"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/template"
)

type TextExtractor interface {
	Extract(ctx context.Context, data []byte, declaredMIME string) (string, error)
}

type Speech interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (speech.Transcript, error)
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

type LLM interface {
	ExtractInfo(ctx context.Context, utterance string) (template.Fields, error)
	Answer(ctx context.Context, question, document string) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, source string, err error, details string) error
}
