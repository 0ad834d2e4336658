package speech

import (
	"context"
	"errors"
)

// ErrNoSpeech means the audio was processed but nothing intelligible came back.
var ErrNoSpeech = errors.New("no speech recognized")

type Transcript struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type STTClient interface {
	// Transcribe converts audio bytes to text. filename carries the
	// container hint (voice.ogg, input.wav).
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

type TTSClient interface {
	// Synthesize returns encoded audio (mp3) for text.
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}
