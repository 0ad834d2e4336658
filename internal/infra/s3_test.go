package infra

import "testing"

func TestBuildPublicURL(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"filled/abc/2026-10-19/x.docx", "https://s3.example.com/docs/filled/abc/2026-10-19/x.docx"},
		{"filled/a b.docx", "https://s3.example.com/docs/filled/a%20b.docx"},
	}
	for _, tt := range tests {
		if got := BuildPublicURL("https://s3.example.com", "docs", tt.key); got != tt.want {
			t.Errorf("BuildPublicURL(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
