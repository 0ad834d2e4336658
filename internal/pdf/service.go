package pdf

import (
	"context"
	"strings"
)

type PDFService struct {
	ext PDFExtractor
}

func NewPDFService(e PDFExtractor) *PDFService {
	return &PDFService{ext: e}
}

// ExtractText concatenates page texts in page order.
func (s *PDFService) ExtractText(ctx context.Context, data []byte) (string, error) {
	pages, err := s.ext.ExtractPages(ctx, data)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}
