package session

import (
	"sync"
	"time"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/quota"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/template"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	Lang string    `json:"lang,omitempty"`
	At   time.Time `json:"at"`
}

// State is everything one user accumulates between turns. Callers hold
// Lock for the duration of a turn.
type State struct {
	mu sync.Mutex

	ID string

	History      []Message
	DocumentName string
	DocumentText string

	ExtractedInfo template.Fields
	FilledText    string
	DocBuffer     []byte
	FilledURL     string

	QuotaExceeded bool
	AudioError    string

	Quota *quota.Tracker
}

func New(id string, tracker *quota.Tracker) *State {
	if tracker == nil {
		tracker = quota.NewTracker()
	}
	return &State{
		ID:    id,
		Quota: tracker,
	}
}

func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }

func (s *State) AddMessage(role, text, lang string) {
	s.History = append(s.History, Message{
		Role: role,
		Text: text,
		Lang: lang,
		At:   time.Now(),
	})
}

// LoadDocument replaces the working document and drops results derived
// from the previous one.
func (s *State) LoadDocument(name, text string) {
	s.DocumentName = name
	s.DocumentText = text
	s.ExtractedInfo = nil
	s.FilledText = ""
	s.DocBuffer = nil
	s.FilledURL = ""
}

func (s *State) HasDocument() bool {
	return s.DocumentText != ""
}

func (s *State) IsTemplate() bool {
	return template.IsTemplate(s.DocumentText)
}

// TakeAudioError returns the pending transcription error once and clears it.
func (s *State) TakeAudioError() string {
	e := s.AudioError
	s.AudioError = ""
	return e
}

// Clear starts a new session in place: history, document, results and
// quota are reset.
func (s *State) Clear() {
	s.History = nil
	s.LoadDocument("", "")
	s.QuotaExceeded = false
	s.AudioError = ""
	s.Quota.Reset()
}

// View is a read-only copy for rendering.
type View struct {
	ID            string            `json:"id"`
	DocumentName  string            `json:"document_name,omitempty"`
	IsTemplate    bool              `json:"is_template"`
	History       []Message         `json:"history"`
	ExtractedInfo map[string]string `json:"extracted_info,omitempty"`
	FilledText    string            `json:"filled_text,omitempty"`
	FilledURL     string            `json:"filled_url,omitempty"`
	HasFilledDoc  bool              `json:"has_filled_doc"`
	QuotaExceeded bool              `json:"quota_exceeded"`
	Quota         quota.Usage       `json:"quota"`
}

// View snapshots the state. It rolls the quota day over like Remaining.
func (s *State) View() View {
	h := make([]Message, len(s.History))
	copy(h, s.History)

	v := View{
		ID:            s.ID,
		DocumentName:  s.DocumentName,
		IsTemplate:    s.IsTemplate(),
		History:       h,
		FilledText:    s.FilledText,
		FilledURL:     s.FilledURL,
		HasFilledDoc:  len(s.DocBuffer) > 0,
		QuotaExceeded: s.QuotaExceeded,
		Quota:         s.Quota.Remaining(),
	}
	if len(s.ExtractedInfo) > 0 {
		v.ExtractedInfo = s.ExtractedInfo.Map()
	}
	return v
}
