package doc

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/pdf"
)

// DocxConverter reads word/document.xml and joins paragraph texts with
// newlines.
type DocxConverter struct{}

func NewDocxConverter() *DocxConverter {
	return &DocxConverter{}
}

func (c *DocxConverter) ConvertToText(ctx context.Context, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	return paragraphsText(ctx, rc)
}

// paragraphsText joins top-level w:p paragraphs with newlines. Text box
// content (w:txbxContent) is skipped; its paragraphs sit inside a run of
// the anchoring paragraph and must not split it.
func paragraphsText(ctx context.Context, r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		paras  []string
		cur    strings.Builder
		depth  int
		skip   int
		inText bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "txbxContent" {
				skip++
				continue
			}
			if skip > 0 {
				continue
			}
			switch t.Name.Local {
			case "p":
				depth++
				if depth == 1 {
					cur.Reset()
				}
			case "t":
				inText = depth > 0
			case "tab":
				if depth > 0 {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					cur.WriteByte('\n')
				}
			}

		case xml.CharData:
			if inText && skip == 0 {
				cur.Write(t)
			}

		case xml.EndElement:
			if t.Name.Local == "txbxContent" {
				skip--
				continue
			}
			if skip > 0 {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					paras = append(paras, cur.String())
				}
			}
		}
	}

	return strings.Join(paras, "\n"), nil
}

// PDFConverter adapts the pdf package.
type PDFConverter struct {
	svc *pdf.PDFService
}

func NewPDFConverter(svc *pdf.PDFService) *PDFConverter {
	return &PDFConverter{svc: svc}
}

func (c *PDFConverter) ConvertToText(ctx context.Context, data []byte) (string, error) {
	return c.svc.ExtractText(ctx, data)
}

type PlainTextConverter struct{}

func (PlainTextConverter) ConvertToText(_ context.Context, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("text file is not valid utf-8")
	}
	return string(data), nil
}
