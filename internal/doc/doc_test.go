package doc

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/docgen"
)

type fakeConverter struct {
	text  string
	err   error
	calls int
}

func (f *fakeConverter) ConvertToText(context.Context, []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestDocxRoundTrip(t *testing.T) {
	data, err := docgen.CreateDocx("Dear Ali,\nWelcome to [Company].", "Filled Document")
	if err != nil {
		t.Fatal(err)
	}

	got, err := NewDocxConverter().ConvertToText(context.Background(), data)
	if err != nil {
		t.Fatal(err)
	}

	want := "Filled Document\nDear Ali,\nWelcome to [Company]."
	if got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestDocxNotZip(t *testing.T) {
	if _, err := NewDocxConverter().ConvertToText(context.Background(), []byte("nope")); err == nil {
		t.Error("expected error for non-zip input")
	}
}

func TestExtractDispatch(t *testing.T) {
	pdfConv := &fakeConverter{text: "pdf text"}
	docxConv := &fakeConverter{text: "docx text"}
	svc := NewService(pdfConv, docxConv, zap.NewNop().Sugar())
	ctx := context.Background()

	got, err := svc.Extract(ctx, []byte("%PDF-1.4"), MimePDF)
	if err != nil || got != "pdf text" {
		t.Fatalf("pdf: %q, %v", got, err)
	}

	got, err = svc.Extract(ctx, []byte("PK"), MimeDOCX)
	if err != nil || got != "docx text" {
		t.Fatalf("docx: %q, %v", got, err)
	}

	got, err = svc.Extract(ctx, []byte("Hello [Name]"), "text/plain; charset=utf-8")
	if err != nil || got != "Hello [Name]" {
		t.Fatalf("text: %q, %v", got, err)
	}
}

func TestExtractSniffsMissingType(t *testing.T) {
	pdfConv := &fakeConverter{text: "pdf text"}
	svc := NewService(pdfConv, NewDocxConverter(), zap.NewNop().Sugar())
	ctx := context.Background()

	if _, err := svc.Extract(ctx, []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"), ""); err != nil {
		t.Fatalf("sniffed pdf: %v", err)
	}
	if pdfConv.calls != 1 {
		t.Errorf("pdf converter calls = %d, want 1", pdfConv.calls)
	}

	data, _ := docgen.CreateDocx("body", "T")
	got, err := svc.Extract(ctx, data, "application/octet-stream")
	if err != nil {
		t.Fatalf("sniffed docx: %v", err)
	}
	if got != "T\nbody" {
		t.Errorf("docx text = %q", got)
	}
}

func TestExtractUnsupported(t *testing.T) {
	svc := NewService(&fakeConverter{}, &fakeConverter{}, zap.NewNop().Sugar())

	png := []byte("\x89PNG\r\n\x1a\n0000")
	_, err := svc.Extract(context.Background(), png, "image/png")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestExtractConverterError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&fakeConverter{err: boom}, &fakeConverter{}, zap.NewNop().Sugar())

	_, err := svc.Extract(context.Background(), []byte("%PDF"), MimePDF)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
	if errors.Is(err, ErrUnsupportedType) {
		t.Error("converter failure is not an unsupported type")
	}
}

func TestPlainTextRejectsBinary(t *testing.T) {
	if _, err := (PlainTextConverter{}).ConvertToText(context.Background(), []byte{0xff, 0xfe, 0xfd}); err == nil {
		t.Error("expected invalid utf-8 error")
	}
}

func TestParagraphsTextKeepsAnchoringParagraph(t *testing.T) {
	const ns = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:v="urn:schemas-microsoft-com:vml" ` +
		`xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006" ` +
		`xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"`

	tests := []struct {
		name string
		box  string
	}{
		{
			name: "vml text box",
			box:  `<w:r><w:pict><v:shape><v:textbox><w:txbxContent><w:p><w:r><w:t>Logo</w:t></w:r></w:p></w:txbxContent></v:textbox></v:shape></w:pict></w:r>`,
		},
		{
			name: "alternate content",
			box: `<w:r><mc:AlternateContent>` +
				`<mc:Choice Requires="wps"><w:drawing><wps:txbx><w:txbxContent><w:p><w:r><w:t>Logo</w:t></w:r></w:p></w:txbxContent></wps:txbx></w:drawing></mc:Choice>` +
				`<mc:Fallback><w:pict><v:shape><v:textbox><w:txbxContent><w:p><w:r><w:t>Logo</w:t></w:r></w:p></w:txbxContent></v:textbox></v:shape></w:pict></mc:Fallback>` +
				`</mc:AlternateContent></w:r>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xml := `<w:document ` + ns + `><w:body>` +
				`<w:p><w:r><w:t>Dear [Full Name],</w:t></w:r>` + tt.box +
				`<w:r><w:t xml:space="preserve"> welcome to [Company].</w:t></w:r></w:p>` +
				`<w:p><w:r><w:t>Regards</w:t></w:r></w:p>` +
				`</w:body></w:document>`

			got, err := paragraphsText(context.Background(), strings.NewReader(xml))
			if err != nil {
				t.Fatal(err)
			}
			want := "Dear [Full Name], welcome to [Company].\nRegards"
			if got != want {
				t.Errorf("text = %q, want %q", got, want)
			}
		})
	}
}
