package pdf

import "context"

type PDFPage struct {
	Number int
	Text   string
}

type PDFExtractor interface {
	ExtractPages(ctx context.Context, data []byte) ([]PDFPage, error)
}
