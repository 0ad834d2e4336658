package ai

import "context"

// Completer sends one prompt to a chat model and returns the text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// Tokenizer measures and cuts document text to a token budget.
type Tokenizer interface {
	Count(text string) int
	Truncate(text string, max int) string
}
