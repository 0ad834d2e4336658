package session

import (
	"testing"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/template"
)

func TestClearResetsEverything(t *testing.T) {
	s := New("chat-1", nil)
	s.LoadDocument("offer.docx", "Dear [Name]")
	s.AddMessage(RoleUser, "my name is Ali", "en")
	s.ExtractedInfo = template.Fields{{Key: "Full Name", Value: "Ali"}}
	s.FilledText = "Dear Ali"
	s.DocBuffer = []byte("docx")
	s.QuotaExceeded = true
	s.AudioError = "boom"
	s.Quota.Increment()
	s.Quota.Increment()

	s.Clear()

	if s.HasDocument() || len(s.History) != 0 || s.FilledText != "" || s.DocBuffer != nil {
		t.Errorf("state not cleared: %+v", s.View())
	}
	if s.QuotaExceeded || s.AudioError != "" {
		t.Error("flags not cleared")
	}
	if u := s.Quota.Remaining(); u.Used != 0 {
		t.Errorf("quota used = %d, want 0", u.Used)
	}
}

func TestLoadDocumentDropsDerivedResults(t *testing.T) {
	s := New("x", nil)
	s.AddMessage(RoleUser, "hi", "en")
	s.FilledText = "old"
	s.DocBuffer = []byte{1}

	s.LoadDocument("new.pdf", "plain text")

	if s.FilledText != "" || s.DocBuffer != nil {
		t.Error("derived results should be dropped")
	}
	if len(s.History) != 1 {
		t.Error("history must survive a new upload")
	}
	if s.IsTemplate() {
		t.Error("plain text is not a template")
	}
}

func TestTakeAudioError(t *testing.T) {
	s := New("x", nil)
	s.AudioError = "Transcription failed. Please try again."

	if got := s.TakeAudioError(); got == "" {
		t.Fatal("expected pending error")
	}
	if got := s.TakeAudioError(); got != "" {
		t.Errorf("second take = %q, want empty", got)
	}
}

func TestStoreGetOrCreate(t *testing.T) {
	st := NewStore(5)

	a := st.GetOrCreate("42")
	b := st.GetOrCreate("42")
	if a != b {
		t.Fatal("same id must return same session")
	}
	if a.Quota.Limit() != 5 {
		t.Errorf("limit = %d, want 5", a.Quota.Limit())
	}

	c := st.Create()
	if c.ID == "" || c == a {
		t.Error("Create should mint a new session")
	}
	if st.Len() != 2 {
		t.Errorf("Len() = %d", st.Len())
	}

	st.Delete("42")
	if _, ok := st.Get("42"); ok {
		t.Error("session should be gone")
	}
}

func TestViewCopiesHistory(t *testing.T) {
	s := New("v", nil)
	s.AddMessage(RoleUser, "one", "en")
	v := s.View()
	s.AddMessage(RoleAssistant, "two", "en")

	if len(v.History) != 1 {
		t.Errorf("view history changed: %d", len(v.History))
	}
	if v.Quota.Total == 0 {
		t.Error("quota snapshot missing")
	}
}
