package ai

import (
	"unicode/utf8"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

type tiktokenizer struct {
	enc *tiktoken.Tiktoken
}

func (t tiktokenizer) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

func (t tiktokenizer) Truncate(text string, max int) string {
	tokens := t.enc.Encode(text, nil, nil)
	if len(tokens) <= max {
		return text
	}
	return t.enc.Decode(tokens[:max])
}

// approxTokenizer counts four runes per token.
type approxTokenizer struct{}

func (approxTokenizer) Count(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}

func (approxTokenizer) Truncate(text string, max int) string {
	limit := max * 4
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}

// NewTokenizer loads the BPE ranks for model. The ranks are fetched on first
// use, so offline deployments fall back to the rune estimate.
func NewTokenizer(model string, log *zap.SugaredLogger) Tokenizer {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
	}
	if err != nil {
		log.Warnw("[ai] tokenizer init fail, using estimate", "model", model, "error", err)
		return approxTokenizer{}
	}
	return tiktokenizer{enc: enc}
}
