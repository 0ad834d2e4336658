package pdf

import (
	"bytes"
	"context"
	"fmt"

	lpdf "github.com/ledongthuc/pdf"
)

type LedongthucExtractor struct{}

func NewLedongthucExtractor() *LedongthucExtractor {
	return &LedongthucExtractor{}
}

// ExtractPages reads the PDF from memory. Pages without a text layer come
// back empty; the reader panics on some malformed files, so that is turned
// into an error.
func (e *LedongthucExtractor) ExtractPages(
	ctx context.Context,
	data []byte,
) (pages []PDFPage, err error) {

	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	reader, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	n := reader.NumPage()
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}

		pages = append(pages, PDFPage{Number: i, Text: text})
	}

	return pages, nil
}
