package docgen

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		b, _ := io.ReadAll(rc)
		return string(b)
	}
	t.Fatalf("part %s missing", name)
	return ""
}

func TestCreateDocxParts(t *testing.T) {
	data, err := CreateDocx("Dear Ali & co,\nWelcome <aboard>", "Filled Document")
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/styles.xml"} {
		readPart(t, data, name)
	}

	doc := readPart(t, data, "word/document.xml")
	for _, want := range []string{
		`<w:pStyle w:val="Heading1"/>`,
		"Filled Document",
		"Dear Ali &amp; co,",
		"<w:br/>",
		"Welcome &lt;aboard&gt;",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
}

func TestCreateDocxDefaultTitle(t *testing.T) {
	data, err := CreateDocx("x", "")
	if err != nil {
		t.Fatal(err)
	}
	if doc := readPart(t, data, "word/document.xml"); !strings.Contains(doc, DefaultTitle) {
		t.Error("default title not used")
	}
}
