package delivery

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/assistant"
	"github.com/webwizard2024/document-filling-agent-using-voice/internal/session"
)

const (
	maxUpload   = 20 << 20
	serviceName = "document-filling-agent"
)

var errNoFile = errors.New("missing file")

type SessionHandler struct {
	assistant *assistant.Service
	sessions  *session.Store
	log       *logger.ZapLogger
}

func NewSessionHandler(asst *assistant.Service, sessions *session.Store, log *logger.ZapLogger) *SessionHandler {
	return &SessionHandler{
		assistant: asst,
		sessions:  sessions,
		log:       log,
	}
}

type turnResponse struct {
	assistant.Result
	Error    string `json:"error,omitempty"`
	AudioMP3 []byte `json:"audio_mp3,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps a turn outcome to an HTTP status.
func StatusFor(o assistant.Outcome) int {
	switch o {
	case assistant.OutcomeQuotaExceeded:
		return http.StatusTooManyRequests
	case assistant.OutcomeUnsupported:
		return http.StatusUnsupportedMediaType
	case assistant.OutcomeTranscriptionFailed:
		return http.StatusUnprocessableEntity
	case assistant.OutcomeFailed:
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func (h *SessionHandler) writeResult(w http.ResponseWriter, r *http.Request, res assistant.Result) {
	out := turnResponse{Result: res, AudioMP3: res.Audio}
	if res.Err != nil {
		out.Error = res.Err.Error()
		h.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "turn " + string(res.Outcome) + " request=" + requestID(r.Context()),
			Service: serviceName,
			Error:   res.Err,
		})
	}
	writeJSON(w, StatusFor(res.Outcome), out)
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*session.State, bool) {
	st, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return st, true
}

// POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"id": st.ID})
}

// GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, ok := h.session(w, r)
	if !ok {
		return
	}
	st.Lock()
	v := st.View()
	st.Unlock()
	writeJSON(w, http.StatusOK, v)
}

// DELETE /sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.session(w, r); !ok {
		return
	}
	h.sessions.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// POST /sessions/{id}/clear
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	st, ok := h.session(w, r)
	if !ok {
		return
	}
	st.Lock()
	st.Clear()
	v := st.View()
	st.Unlock()
	writeJSON(w, http.StatusOK, v)
}

// POST /sessions/{id}/document, multipart field "file".
func (h *SessionHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	st, ok := h.session(w, r)
	if !ok {
		return
	}

	data, name, contentType, err := readUpload(w, r, "file")
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid upload", Service: serviceName, Error: err})
		http.Error(w, "invalid upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	res := h.assistant.HandleUpload(r.Context(), st, name, data, contentType)
	h.writeResult(w, r, res)
}

// POST /sessions/{id}/voice, multipart field "audio".
func (h *SessionHandler) Voice(w http.ResponseWriter, r *http.Request) {
	st, ok := h.session(w, r)
	if !ok {
		return
	}

	data, name, _, err := readUpload(w, r, "audio")
	if err != nil {
		http.Error(w, "invalid upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if name == "" || name == "blob" {
		name = "input" + mimetype.Detect(data).Extension()
	}

	res := h.assistant.HandleVoice(r.Context(), st, data, name)
	h.writeResult(w, r, res)
}

// POST /sessions/{id}/ask {"text": "..."}
func (h *SessionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	st, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		http.Error(w, "missing text", http.StatusBadRequest)
		return
	}

	res := h.assistant.HandleText(r.Context(), st, req.Text)
	h.writeResult(w, r, res)
}

// GET /sessions/{id}/document/filled
func (h *SessionHandler) DownloadFilled(w http.ResponseWriter, r *http.Request) {
	st, ok := h.session(w, r)
	if !ok {
		return
	}

	st.Lock()
	data := append([]byte(nil), st.DocBuffer...)
	st.Unlock()

	if len(data) == 0 {
		http.Error(w, "no filled document", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="`+assistant.FilledFilename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GET /sessions/{id}/quota
func (h *SessionHandler) Quota(w http.ResponseWriter, r *http.Request) {
	st, ok := h.session(w, r)
	if !ok {
		return
	}
	st.Lock()
	u := st.Quota.Remaining()
	st.Unlock()
	writeJSON(w, http.StatusOK, u)
}

// POST /sessions/{id}/quota/reset
func (h *SessionHandler) ResetQuota(w http.ResponseWriter, r *http.Request) {
	st, ok := h.session(w, r)
	if !ok {
		return
	}
	st.Lock()
	st.Quota.Reset()
	st.QuotaExceeded = false
	u := st.Quota.Remaining()
	st.Unlock()

	h.log.Log(logger.LogEntry{Level: "info", Message: "quota reset session=" + st.ID, Service: serviceName})
	writeJSON(w, http.StatusOK, u)
}

func readUpload(w http.ResponseWriter, r *http.Request, field string) (data []byte, name, contentType string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return nil, "", "", err
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", "", errNoFile
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", "", err
	}
	return data, header.Filename, header.Header.Get("Content-Type"), nil
}
