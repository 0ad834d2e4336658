package doc

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

type Service struct {
	convs map[string]Converter
	log   *zap.SugaredLogger
}

func NewService(pdfConv, docxConv Converter, log *zap.SugaredLogger) *Service {
	return &Service{
		convs: map[string]Converter{
			MimePDF:  pdfConv,
			MimeDOCX: docxConv,
			MimeText: PlainTextConverter{},
		},
		log: log,
	}
}

// Extract returns the plain text of an uploaded file. declaredMIME comes from
// the uploader; when it is missing or generic the content is sniffed.
// Unknown types yield ErrUnsupportedType.
func (s *Service) Extract(ctx context.Context, data []byte, declaredMIME string) (string, error) {
	mt := s.resolveType(data, declaredMIME)

	conv, ok := s.convs[mt]
	if !ok {
		s.log.Infow("[doc] unsupported type", "declared", declaredMIME, "resolved", mt)
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt)
	}

	text, err := conv.ConvertToText(ctx, data)
	if err != nil {
		s.log.Warnw("[doc] extract failed", "type", mt, "bytes", len(data), "error", err)
		return "", fmt.Errorf("extract %s: %w", mt, err)
	}

	s.log.Infow("[doc] extracted", "type", mt, "bytes", len(data), "chars", len(text))
	return text, nil
}

func (s *Service) resolveType(data []byte, declared string) string {
	mt := normalizeMIME(declared)
	if mt != "" && mt != "application/octet-stream" && mt != "application/zip" {
		return mt
	}
	return Sniff(data)
}

// Sniff detects the content type from the bytes, reduced to the three types
// Extract knows or the detected type without parameters.
func Sniff(data []byte) string {
	m := mimetype.Detect(data)
	for _, known := range []string{MimePDF, MimeDOCX, MimeText} {
		if m.Is(known) {
			return known
		}
	}
	return normalizeMIME(m.String())
}

func normalizeMIME(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(v)
	}
	return mt
}
