package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	elevenLabsURL   = "https://api.elevenlabs.io/v1/text-to-speech/"
	elevenLabsModel = "eleven_multilingual_v2"
	DefaultVoiceID  = "21m00Tcm4TlvDq8ikWAM"
)

type ElevenLabsClient struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
}

func NewElevenLabsClient(apiKey, voiceID string) *ElevenLabsClient {
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	return &ElevenLabsClient{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: elevenLabsURL,
		client:  &http.Client{},
	}
}

func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	payload, err := json.Marshal(map[string]any{
		"text":          text,
		"model_id":      elevenLabsModel,
		"language_code": lang,
		"voice_settings": map[string]float64{
			"stability":        0.5,
			"similarity_boost": 0.75,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.voiceID, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read elevenlabs body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{Service: "elevenlabs", StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
