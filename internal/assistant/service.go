// Package assistant runs one user turn: load a document, or take an
// utterance and either fill the loaded template or answer about the
// loaded document.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/ai"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/doc"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/docgen"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/ports"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/session"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/speech"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/template"
)

type Service struct {
	docs      TextExtractor
	speech    Speech
	llm       LLM
	artifacts ports.ArtifactService
	notifier  Notifier
	log       *zap.SugaredLogger
}

// NewService wires the turn pipeline. artifacts and notifier may be nil.
func NewService(
	docs TextExtractor,
	sp Speech,
	llm LLM,
	artifacts ports.ArtifactService,
	notifier Notifier,
	log *zap.SugaredLogger,
) *Service {
	return &Service{
		docs:      docs,
		speech:    sp,
		llm:       llm,
		artifacts: artifacts,
		notifier:  notifier,
		log:       log,
	}
}

// HandleUpload extracts the text of an uploaded file and makes it the
// session's working document. An unsupported file leaves the session as is.
func (s *Service) HandleUpload(ctx context.Context, st *session.State, name string, data []byte, declaredMIME string) Result {
	st.Lock()
	defer st.Unlock()

	text, err := s.docs.Extract(ctx, data, declaredMIME)
	if err != nil {
		if errors.Is(err, doc.ErrUnsupportedType) {
			s.log.Infow("[assistant] unsupported upload", "session", st.ID, "name", name, "mime", declaredMIME)
			return Result{Outcome: OutcomeUnsupported, Message: doc.UnsupportedMessage, Err: err}
		}
		s.fail(ctx, st, "extract", err)
		return Result{Outcome: OutcomeFailed, Message: MsgFailed, Err: err}
	}

	st.LoadDocument(name, text)

	if st.IsTemplate() {
		s.log.Infow("[assistant] template loaded", "session", st.ID, "name", name, "chars", len(text))
		return Result{Outcome: OutcomeTemplateLoaded, Message: MsgTemplateLoaded}
	}
	s.log.Infow("[assistant] document loaded", "session", st.ID, "name", name, "chars", len(text))
	return Result{Outcome: OutcomeDocumentLoaded, Message: MsgDocumentLoaded}
}

// HandleVoice transcribes audio and runs the request it contains.
func (s *Service) HandleVoice(ctx context.Context, st *session.State, audio []byte, filename string) Result {
	st.Lock()
	defer st.Unlock()

	prev := st.TakeAudioError()

	tr, err := s.speech.Transcribe(ctx, audio, filename)
	if err != nil {
		s.log.Warnw("[assistant] transcription failed", "session", st.ID, "error", err)
		st.AudioError = MsgTranscriptionFailed
		return Result{
			Outcome:            OutcomeTranscriptionFailed,
			Message:            MsgTranscriptionFailed,
			Err:                err,
			PreviousAudioError: prev,
		}
	}

	res := s.turn(ctx, st, tr.Text, tr.Lang)
	res.PreviousAudioError = prev
	return res
}

// HandleText runs a typed request through the same pipeline as voice.
func (s *Service) HandleText(ctx context.Context, st *session.State, text string) Result {
	st.Lock()
	defer st.Unlock()

	return s.turn(ctx, st, text, speech.DetectLanguage(text))
}

func (s *Service) turn(ctx context.Context, st *session.State, text, lang string) Result {
	st.AddMessage(session.RoleUser, text, lang)

	var res Result
	if st.IsTemplate() {
		res = s.fill(ctx, st, text)
	} else {
		res = s.answer(ctx, st, text, lang)
	}
	res.Transcript = text
	res.Lang = lang
	return res
}

// gate consumes one request from the daily quota. ok is false when the
// quota is used up and no model call may be made.
func (s *Service) gate(st *session.State) (Result, bool) {
	if !st.Quota.Check() {
		st.QuotaExceeded = true
		s.log.Infow("[assistant] quota exceeded", "session", st.ID, "limit", st.Quota.Limit())
		return Result{Outcome: OutcomeQuotaExceeded, Message: MsgQuotaExceeded}, false
	}
	st.Quota.Increment()
	return Result{}, true
}

// modelFailure maps an LLM error to a result. Provider quota errors keep
// the request counted; anything else gives it back.
func (s *Service) modelFailure(ctx context.Context, st *session.State, op string, err error) Result {
	if errors.Is(err, ai.ErrQuotaExhausted) {
		st.QuotaExceeded = true
		s.log.Warnw("[assistant] provider quota exhausted", "session", st.ID, "op", op, "error", err)
		return Result{Outcome: OutcomeQuotaExceeded, Message: MsgQuotaExceeded}
	}
	st.Quota.Rollback()
	s.fail(ctx, st, op, err)
	return Result{Outcome: OutcomeFailed, Message: MsgFailed, Err: err}
}

func (s *Service) fill(ctx context.Context, st *session.State, utterance string) Result {
	if res, ok := s.gate(st); !ok {
		return res
	}

	start := time.Now()
	fields, err := s.llm.ExtractInfo(ctx, utterance)
	if err != nil {
		return s.modelFailure(ctx, st, "extract_info", err)
	}
	if len(fields) == 0 {
		s.log.Infow("[assistant] nothing extracted", "session", st.ID)
		return Result{Outcome: OutcomeNothingExtracted, Message: MsgNothingExtracted}
	}

	filled, matches := template.FillWithReport(st.DocumentText, fields)

	docx, err := docgen.CreateDocx(filled, FilledTitle)
	if err != nil {
		st.Quota.Rollback()
		s.fail(ctx, st, "create_docx", err)
		return Result{Outcome: OutcomeFailed, Message: MsgFailed, Err: err}
	}

	st.ExtractedInfo = fields
	st.FilledText = filled
	st.DocBuffer = docx
	st.FilledURL = ""

	if s.artifacts != nil {
		url, err := s.artifacts.SaveFilled(ctx, st.ID, FilledFilename, docx)
		if err != nil {
			s.notify(ctx, st, "save_filled", err)
		} else {
			st.FilledURL = url
		}
	}

	st.AddMessage(session.RoleAssistant, MsgFilled, "")
	s.log.Infow("[assistant] fill done",
		"session", st.ID,
		"fields", len(fields),
		"matched", countMatched(matches),
		"took", time.Since(start),
	)

	return Result{
		Outcome:    OutcomeFilled,
		Message:    MsgFilled,
		Fields:     fields,
		Matches:    matches,
		FilledText: filled,
		Docx:       docx,
		DocxURL:    st.FilledURL,
	}
}

func (s *Service) answer(ctx context.Context, st *session.State, question, lang string) Result {
	if res, ok := s.gate(st); !ok {
		return res
	}

	reply, err := s.llm.Answer(ctx, question, st.DocumentText)
	if err != nil {
		return s.modelFailure(ctx, st, "answer", err)
	}

	st.AddMessage(session.RoleAssistant, reply, lang)

	res := Result{Outcome: OutcomeAnswered, Message: reply, Answer: reply}

	audio, err := s.speech.Synthesize(ctx, reply, lang)
	if err != nil {
		s.log.Warnw("[assistant] speech synthesis failed", "session", st.ID, "error", err)
		return res
	}
	res.Audio = audio
	return res
}

func (s *Service) fail(ctx context.Context, st *session.State, op string, err error) {
	s.log.Errorw("[assistant] turn failed", "session", st.ID, "op", op, "error", err)
	s.notify(ctx, st, op, err)
}

func (s *Service) notify(ctx context.Context, st *session.State, op string, err error) {
	if s.notifier == nil {
		return
	}
	details := fmt.Sprintf("session=%s op=%s", st.ID, op)
	if nerr := s.notifier.Notify(ctx, "assistant", err, details); nerr != nil {
		s.log.Warnw("[assistant] notify fail", "error", nerr)
	}
}

func countMatched(matches []template.Match) int {
	n := 0
	for _, m := range matches {
		if m.Tier != template.TierNone {
			n++
		}
	}
	return n
}
