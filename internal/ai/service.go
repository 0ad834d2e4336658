package ai

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/template"
)

const DefaultDocTokenBudget = 6000

type Service struct {
	llm       Completer
	tokenizer Tokenizer
	budget    int
	timeout   time.Duration
	log       *zap.SugaredLogger
}

type Option func(*Service)

// WithDocBudget caps how many document tokens go into an answer prompt.
func WithDocBudget(tok Tokenizer, budget int) Option {
	return func(s *Service) {
		s.tokenizer = tok
		s.budget = budget
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func NewService(llm Completer, log *zap.SugaredLogger, opts ...Option) *Service {
	s := &Service{
		llm:       llm,
		tokenizer: approxTokenizer{},
		budget:    DefaultDocTokenBudget,
		log:       log,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ExtractInfo asks the model for the employee fields mentioned in utterance.
// Output that is not a JSON object gives empty Fields and no error.
func (s *Service) ExtractInfo(ctx context.Context, utterance string) (template.Fields, error) {
	start := time.Now()
	raw, err := s.complete(ctx, buildExtractPrompt(utterance))
	if err != nil {
		s.log.Warnw("[ai] extract fail", "provider", s.llm.Provider(), "error", err)
		return nil, err
	}

	fields := parseFields(raw)
	s.log.Infow("[ai] extract done",
		"provider", s.llm.Provider(),
		"fields", len(fields),
		"took", time.Since(start),
	)
	return fields, nil
}

// Answer replies to question with the document as context.
func (s *Service) Answer(ctx context.Context, question, document string) (string, error) {
	if s.budget > 0 && s.tokenizer.Count(document) > s.budget {
		s.log.Infow("[ai] document truncated", "budget", s.budget)
		document = s.tokenizer.Truncate(document, s.budget)
	}

	start := time.Now()
	reply, err := s.complete(ctx, buildAnswerPrompt(question, document))
	if err != nil {
		s.log.Warnw("[ai] answer fail", "provider", s.llm.Provider(), "error", err)
		return "", err
	}

	s.log.Infow("[ai] answer done", "provider", s.llm.Provider(), "chars", len(reply), "took", time.Since(start))
	return reply, nil
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	out, err := s.llm.Complete(ctx, prompt)
	return out, classify(s.llm.Provider(), err)
}
