package assistant

import "github.com/webwizard2024/document-filling-agent-using-voice/internal/template"

type Outcome string

const (
	OutcomeTemplateLoaded      Outcome = "template_loaded"
	OutcomeDocumentLoaded      Outcome = "document_loaded"
	OutcomeUnsupported         Outcome = "unsupported_type"
	OutcomeFilled              Outcome = "filled"
	OutcomeNothingExtracted    Outcome = "nothing_extracted"
	OutcomeAnswered            Outcome = "answered"
	OutcomeQuotaExceeded       Outcome = "quota_exceeded"
	OutcomeTranscriptionFailed Outcome = "transcription_failed"
	OutcomeFailed              Outcome = "failed"
)

const (
	FilledTitle    = "Filled Document"
	FilledFilename = "filled_document.docx"
)

const (
	MsgTemplateLoaded      = "This looks like a template. Speak to fill in the fields."
	MsgDocumentLoaded      = "This looks like a full document. Speak to ask questions about it."
	MsgFilled              = "Document processed! Your filled document is ready."
	MsgNothingExtracted    = "I couldn't extract any specific information to fill the template. Please try again, speaking more clearly."
	MsgQuotaExceeded       = "You have reached your daily API quota. Please wait until tomorrow or upgrade your plan."
	MsgTranscriptionFailed = "Transcription failed. Please try again."
	MsgFailed              = "An unexpected error occurred. Please try again."
)

// Result describes one finished turn. Err is set only for OutcomeFailed,
// OutcomeUnsupported and OutcomeTranscriptionFailed.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
	Err     error   `json:"-"`

	// PreviousAudioError is the transcription error left by the last turn,
	// reported once.
	PreviousAudioError string `json:"previous_audio_error,omitempty"`

	Transcript string `json:"transcript,omitempty"`
	Lang       string `json:"lang,omitempty"`

	Fields     template.Fields  `json:"fields,omitempty"`
	Matches    []template.Match `json:"matches,omitempty"`
	FilledText string           `json:"filled_text,omitempty"`
	Docx       []byte           `json:"-"`
	DocxURL    string           `json:"docx_url,omitempty"`

	Answer string `json:"answer,omitempty"`
	Audio  []byte `json:"-"`
}
